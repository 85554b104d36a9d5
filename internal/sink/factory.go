package sink

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/matthieukhl/ordersynth/internal/awsutil"
	"github.com/matthieukhl/ordersynth/internal/config"
	"github.com/matthieukhl/ordersynth/internal/database"
)

// New creates a sink based on configuration. SQL sinks open their own
// connection; Close releases it. Failures to reach the backing store are
// returned as a PersistenceError with Op "connect".
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Sink, error) {
	table := cfg.Generator.Table

	switch cfg.Sink.Driver {
	case "memory":
		return NewMemorySink(), nil

	case "sql", "postgres":
		dbCfg, err := awsutil.ResolveDBConfig(ctx, cfg)
		if err != nil {
			return nil, connectErr(cfg.Sink.Driver, err)
		}
		if cfg.Sink.Driver == "postgres" {
			dbCfg.Driver = string(database.Postgres)
		}
		db, err := database.NewConnection(&dbCfg)
		if err != nil {
			return nil, connectErr(cfg.Sink.Driver, err)
		}

		var s Sink
		if db.Dialect == database.Postgres {
			s, err = NewGormSink(db, table, cfg.Sink.BatchSize, logger)
		} else {
			s, err = NewSQLSink(db, table, cfg.Sink.BatchSize, logger)
		}
		if err != nil {
			_ = db.Close()
			return nil, connectErr(cfg.Sink.Driver, err)
		}
		return s, nil

	case "s3":
		awsCfg, err := awsutil.LoadAWSConfig(ctx, cfg.AWS)
		if err != nil {
			return nil, connectErr(cfg.Sink.Driver, err)
		}
		s, err := NewS3Sink(awsutil.NewS3Client(awsCfg), cfg.Sink.Bucket, cfg.Sink.Prefix, table, logger)
		if err != nil {
			return nil, connectErr(cfg.Sink.Driver, err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unsupported sink driver: %s", cfg.Sink.Driver)
	}
}

func connectErr(driver string, err error) error {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Sink: driver, Op: "connect", Err: err}
}
