package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/matthieukhl/ordersynth/internal/database"
	"github.com/matthieukhl/ordersynth/internal/models"
)

const DefaultBatchSize = 500

// SQLSink writes through database/sql to MySQL/TiDB or SQLite. The whole
// write runs in one transaction; MySQL commits DDL implicitly, so there only
// the inserts are atomic.
type SQLSink struct {
	db        *database.DB
	table     string
	batchSize int
	logger    *zap.Logger
}

func NewSQLSink(db *database.DB, table string, batchSize int, logger *zap.Logger) (*SQLSink, error) {
	if db.Dialect != database.MySQL && db.Dialect != database.SQLite {
		return nil, fmt.Errorf("sql sink does not support dialect %s", db.Dialect)
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
	return &SQLSink{db: db, table: table, batchSize: batchSize, logger: logger}, nil
}

func (s *SQLSink) Name() string {
	return "sql"
}

func (s *SQLSink) Write(ctx context.Context, orders []models.Order, mode Mode) (int, error) {
	ddl, err := s.schemaStatements(mode)
	if err != nil {
		return 0, &PersistenceError{Sink: s.Name(), Op: "prepare", Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &PersistenceError{Sink: s.Name(), Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range ddl {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, &PersistenceError{Sink: s.Name(), Op: "create table", Err: err}
		}
	}

	written := 0
	for start := 0; start < len(orders); start += s.batchSize {
		end := min(start+s.batchSize, len(orders))
		if err := s.insertBatch(ctx, tx, orders[start:end]); err != nil {
			return 0, &PersistenceError{Sink: s.Name(), Op: "insert", Err: err}
		}
		written += end - start
		s.logger.Debug("inserted batch",
			zap.String("table", s.table),
			zap.Int("rows", end-start),
			zap.Int("written", written))
	}

	if err := tx.Commit(); err != nil {
		return 0, &PersistenceError{Sink: s.Name(), Op: "commit", Err: err}
	}

	s.logger.Info("orders persisted",
		zap.String("sink", s.Name()),
		zap.String("table", s.table),
		zap.String("mode", string(mode)),
		zap.Int("rows", written))
	return written, nil
}

func (s *SQLSink) schemaStatements(mode Mode) ([]string, error) {
	switch mode {
	case ModeReplace:
		drop, err := database.DropTableStatement(s.db.Dialect, s.table)
		if err != nil {
			return nil, err
		}
		create, err := database.CreateTableStatements(s.db.Dialect, s.table, false)
		if err != nil {
			return nil, err
		}
		return append([]string{drop}, create...), nil
	case ModeAppend:
		return database.CreateTableStatements(s.db.Dialect, s.table, true)
	}
	return nil, fmt.Errorf("unknown write mode %q", mode)
}

func (s *SQLSink) insertBatch(ctx context.Context, tx *sql.Tx, batch []models.Order) error {
	query := insertStatement(s.db.Dialect, s.table, len(batch))
	args := make([]any, 0, len(batch)*len(models.Columns))
	for _, o := range batch {
		args = append(args, o.Values()...)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// insertStatement builds a multi-row INSERT with rows placeholder groups.
func insertStatement(d database.Dialect, table string, rows int) string {
	group := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(models.Columns)), ", ") + ")"

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ",
		database.QuoteIdent(d, table), strings.Join(models.Columns, ", "))
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(group)
	}
	return b.String()
}

func (s *SQLSink) CountRows(ctx context.Context) (int64, error) {
	return s.db.CountRows(ctx, s.table)
}

func (s *SQLSink) Columns(ctx context.Context) ([]string, error) {
	return s.db.Columns(ctx, s.table)
}

func (s *SQLSink) Close() error {
	return s.db.Close()
}
