package awsutil

import (
	"context"
	"errors"
	"testing"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/ordersynth/internal/config"
)

type fakeSecrets struct {
	values map[string]string
	calls  int
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	v, ok := f.values[sdkaws.ToString(in.SecretId)]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: sdkaws.String(v)}, nil
}

func TestSecretsClientCaches(t *testing.T) {
	fake := &fakeSecrets{values: map[string]string{"db": `{"username":"u","host":"h"}`}}
	client := NewSecretsClientWith(fake)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		v, err := client.GetSecret(ctx, "db")
		require.NoError(t, err)
		assert.Equal(t, `{"username":"u","host":"h"}`, v)
	}
	assert.Equal(t, 1, fake.calls)

	_, err := client.GetSecret(ctx, "missing")
	assert.Error(t, err)
}

func TestGetDBCredentials(t *testing.T) {
	fake := &fakeSecrets{values: map[string]string{
		"numeric": `{"username":"app","password":"pw","host":"db.internal","port":3306,"dbname":"shop"}`,
		"quoted":  `{"username":"app","password":"pw","host":"db.internal","port":"4000"}`,
		"broken":  `{"username":`,
		"partial": `{"password":"pw"}`,
	}}
	client := NewSecretsClientWith(fake)
	ctx := context.Background()

	creds, err := client.GetDBCredentials(ctx, "numeric")
	require.NoError(t, err)
	cfg := config.DBConfig{Driver: "mysql", DSN: "old", Name: "keep"}
	require.NoError(t, creds.Apply(&cfg))
	assert.Equal(t, config.DBConfig{
		Driver: "mysql", User: "app", Password: "pw", Host: "db.internal", Port: 3306, Name: "shop",
	}, cfg)

	creds, err = client.GetDBCredentials(ctx, "quoted")
	require.NoError(t, err)
	cfg = config.DBConfig{Name: "keep"}
	require.NoError(t, creds.Apply(&cfg))
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "keep", cfg.Name)

	_, err = client.GetDBCredentials(ctx, "broken")
	assert.Error(t, err)
	_, err = client.GetDBCredentials(ctx, "partial")
	assert.Error(t, err)
}

type fakeSTS struct{}

func (fakeSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return &sts.GetCallerIdentityOutput{
		Account: sdkaws.String("123456789012"),
		Arn:     sdkaws.String("arn:aws:iam::123456789012:user/ci"),
		UserId:  sdkaws.String("AIDEXAMPLE"),
	}, nil
}

func TestCallerIdentity(t *testing.T) {
	id, err := CallerIdentity(context.Background(), fakeSTS{})
	require.NoError(t, err)
	assert.Equal(t, Identity{
		Account: "123456789012",
		ARN:     "arn:aws:iam::123456789012:user/ci",
		UserID:  "AIDEXAMPLE",
	}, id)
}

type fakeBuckets struct{ err error }

func (f fakeBuckets) ListBuckets(context.Context, *s3.ListBucketsInput, ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &s3.ListBucketsOutput{Buckets: []s3types.Bucket{
		{Name: sdkaws.String("exports")},
		{Name: sdkaws.String("logs")},
	}}, nil
}

func TestListBuckets(t *testing.T) {
	names, err := ListBuckets(context.Background(), fakeBuckets{})
	require.NoError(t, err)
	assert.Equal(t, []string{"exports", "logs"}, names)

	_, err = ListBuckets(context.Background(), fakeBuckets{err: errors.New("denied")})
	assert.Error(t, err)
}

func TestResolveDBConfigWithoutSecrets(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{Driver: "sqlite", DSN: ":memory:", SecretName: "db"}}
	db, err := ResolveDBConfig(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.DB, db)
}
