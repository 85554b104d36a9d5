package awsutil

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/matthieukhl/ordersynth/internal/config"
)

type SecretGetter interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type SecretsClient struct {
	client SecretGetter
	cache  map[string]string
	mu     sync.RWMutex
}

func NewSecretsClient(cfg sdkaws.Config) *SecretsClient {
	return NewSecretsClientWith(secretsmanager.NewFromConfig(cfg))
}

func NewSecretsClientWith(client SecretGetter) *SecretsClient {
	return &SecretsClient{
		client: client,
		cache:  make(map[string]string),
	}
}

func (s *SecretsClient) GetSecret(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	if v, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return v, nil
	}
	s.mu.RUnlock()

	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: &name})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", name, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", name)
	}

	s.mu.Lock()
	s.cache[name] = *out.SecretString
	s.mu.Unlock()

	return *out.SecretString, nil
}

// DBCredentials is the JSON layout of an RDS-style database secret. Port
// may be stored as a number or a string.
type DBCredentials struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Host     string      `json:"host"`
	Port     json.Number `json:"port"`
	DBName   string      `json:"dbname"`
}

func (s *SecretsClient) GetDBCredentials(ctx context.Context, name string) (DBCredentials, error) {
	raw, err := s.GetSecret(ctx, name)
	if err != nil {
		return DBCredentials{}, err
	}
	return ParseDBCredentials(raw)
}

func ParseDBCredentials(raw string) (DBCredentials, error) {
	var creds DBCredentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return DBCredentials{}, fmt.Errorf("failed to parse database secret: %w", err)
	}
	if creds.Username == "" || creds.Host == "" {
		return DBCredentials{}, fmt.Errorf("database secret must contain username and host")
	}
	return creds, nil
}

// Apply overrides the connection fields of db with the non-empty secret
// values. The DSN is cleared so it is rebuilt from the new fields.
func (c DBCredentials) Apply(db *config.DBConfig) error {
	db.DSN = ""
	db.User = c.Username
	db.Password = c.Password
	db.Host = c.Host
	if c.DBName != "" {
		db.Name = c.DBName
	}
	if c.Port != "" {
		port, err := strconv.Atoi(c.Port.String())
		if err != nil {
			return fmt.Errorf("invalid port in database secret: %w", err)
		}
		db.Port = port
	}
	return nil
}

// ResolveDBConfig returns cfg.DB with Secrets Manager credentials applied
// when aws.use_secrets is on and db.secret_name is set.
func ResolveDBConfig(ctx context.Context, cfg *config.Config) (config.DBConfig, error) {
	db := cfg.DB
	if !cfg.AWS.UseSecrets || db.SecretName == "" {
		return db, nil
	}
	awsCfg, err := LoadAWSConfig(ctx, cfg.AWS)
	if err != nil {
		return db, err
	}
	creds, err := NewSecretsClient(awsCfg).GetDBCredentials(ctx, db.SecretName)
	if err != nil {
		return db, err
	}
	if err := creds.Apply(&db); err != nil {
		return db, err
	}
	return db, nil
}
