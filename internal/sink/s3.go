package sink

import (
	"bytes"
	"context"
	"fmt"
	"path"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matthieukhl/ordersynth/internal/models"
)

// ObjectPutter is the part of the S3 client the sink uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads each batch as one CSV object. Replace overwrites a fixed
// key per table; append adds a new object per write.
type S3Sink struct {
	client ObjectPutter
	bucket string
	prefix string
	table  string
	logger *zap.Logger

	newID func() string
}

func NewS3Sink(client ObjectPutter, bucket, prefix, table string, logger *zap.Logger) (*S3Sink, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 sink needs a bucket")
	}
	if table == "" {
		return nil, fmt.Errorf("s3 sink needs a table name")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: prefix,
		table:  table,
		logger: logger,
		newID:  uuid.NewString,
	}, nil
}

func (s *S3Sink) Name() string {
	return "s3"
}

// Key returns the object key a write in mode goes to.
func (s *S3Sink) Key(mode Mode) string {
	if mode == ModeAppend {
		return path.Join(s.prefix, s.table, s.newID()+".csv")
	}
	return path.Join(s.prefix, s.table+".csv")
}

func (s *S3Sink) Write(ctx context.Context, orders []models.Order, mode Mode) (int, error) {
	if mode != ModeReplace && mode != ModeAppend {
		return 0, &PersistenceError{Sink: s.Name(), Op: "prepare", Err: fmt.Errorf("unknown write mode %q", mode)}
	}

	var buf bytes.Buffer
	if err := EncodeCSV(&buf, orders); err != nil {
		return 0, &PersistenceError{Sink: s.Name(), Op: "encode", Err: err}
	}

	key := s.Key(mode)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        sdkaws.String(s.bucket),
		Key:           sdkaws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: sdkaws.Int64(int64(buf.Len())),
		ContentType:   sdkaws.String("text/csv"),
	})
	if err != nil {
		return 0, &PersistenceError{Sink: s.Name(), Op: "put object", Err: err}
	}

	s.logger.Info("orders persisted",
		zap.String("sink", s.Name()),
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("rows", len(orders)),
		zap.Int("bytes", buf.Len()))
	return len(orders), nil
}

func (s *S3Sink) Close() error {
	return nil
}
