package sink

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matthieukhl/ordersynth/internal/database"
	"github.com/matthieukhl/ordersynth/internal/models"
)

// GormSink writes to Postgres through gorm. The table is migrated from the
// models.Order struct tags.
type GormSink struct {
	db        *database.DB
	table     string
	batchSize int
	logger    *zap.Logger
}

func NewGormSink(db *database.DB, table string, batchSize int, logger *zap.Logger) (*GormSink, error) {
	if db.Gorm == nil {
		return nil, fmt.Errorf("gorm sink needs a postgres connection, got %s", db.Dialect)
	}
	if err := database.ValidateTableName(table); err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormSink{db: db, table: table, batchSize: batchSize, logger: logger}, nil
}

func (s *GormSink) Name() string {
	return "postgres"
}

func (s *GormSink) Write(ctx context.Context, orders []models.Order, mode Mode) (int, error) {
	if mode != ModeReplace && mode != ModeAppend {
		return 0, &PersistenceError{Sink: s.Name(), Op: "prepare", Err: fmt.Errorf("unknown write mode %q", mode)}
	}

	op := "begin"
	err := s.db.Gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if mode == ModeReplace {
			op = "drop table"
			if err := tx.Migrator().DropTable(s.table); err != nil {
				return err
			}
		}
		op = "migrate"
		if err := tx.Table(s.table).AutoMigrate(&models.Order{}); err != nil {
			return err
		}
		if len(orders) == 0 {
			return nil
		}
		op = "insert"
		return tx.Table(s.table).CreateInBatches(&orders, s.batchSize).Error
	})
	if err != nil {
		return 0, &PersistenceError{Sink: s.Name(), Op: op, Err: err}
	}

	s.logger.Info("orders persisted",
		zap.String("sink", s.Name()),
		zap.String("table", s.table),
		zap.String("mode", string(mode)),
		zap.Int("rows", len(orders)))
	return len(orders), nil
}

func (s *GormSink) CountRows(ctx context.Context) (int64, error) {
	return s.db.CountRows(ctx, s.table)
}

func (s *GormSink) Columns(ctx context.Context) ([]string, error) {
	return s.db.Columns(ctx, s.table)
}

func (s *GormSink) Close() error {
	return s.db.Close()
}
