package database

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/matthieukhl/ordersynth/internal/models"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// ValidateTableName rejects names that would need quoting beyond a plain
// identifier. Table names are interpolated into DDL, so this is the only
// guard against injection.
func ValidateTableName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}

type column struct {
	name   string
	mysql  string
	sqlite string
}

// orderColumns follows models.Columns. order_id is indexed but not unique:
// every run numbers its orders from the same base, so appended runs repeat ids.
var orderColumns = []column{
	{"order_id", "VARCHAR(32) NOT NULL", "TEXT NOT NULL"},
	{"customer_id", "VARCHAR(32) NOT NULL", "TEXT NOT NULL"},
	{"order_date", "DATE NOT NULL", "TEXT NOT NULL"},
	{"category", "VARCHAR(64) NOT NULL", "TEXT NOT NULL"},
	{"product", "VARCHAR(64) NOT NULL", "TEXT NOT NULL"},
	{"quantity", "INT NOT NULL", "INTEGER NOT NULL"},
	{"unit_price", "DECIMAL(12,2) NOT NULL", "REAL NOT NULL"},
	{"subtotal", "DECIMAL(12,2) NOT NULL", "REAL NOT NULL"},
	{"discount_rate", "DECIMAL(4,2) NOT NULL", "REAL NOT NULL"},
	{"discount_amount", "DECIMAL(12,2) NOT NULL", "REAL NOT NULL"},
	{"shipping_cost", "DECIMAL(10,2) NOT NULL", "REAL NOT NULL"},
	{"total_amount", "DECIMAL(12,2) NOT NULL", "REAL NOT NULL"},
	{"region", "VARCHAR(32) NOT NULL", "TEXT NOT NULL"},
	{"customer_segment", "VARCHAR(32) NOT NULL", "TEXT NOT NULL"},
	{"satisfaction_rating", "DECIMAL(3,1) NOT NULL", "REAL NOT NULL"},
	{"day_of_week", "VARCHAR(16) NOT NULL", "TEXT NOT NULL"},
	{"month", "INT NOT NULL", "INTEGER NOT NULL"},
	{"quarter", "VARCHAR(2) NOT NULL", "TEXT NOT NULL"},
	{"is_weekend", "BOOLEAN NOT NULL", "INTEGER NOT NULL"},
	{"is_holiday_season", "BOOLEAN NOT NULL", "INTEGER NOT NULL"},
}

// QuoteIdent quotes a validated identifier for the dialect.
func QuoteIdent(d Dialect, name string) string {
	if d == MySQL {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// CreateTableStatements returns the DDL for the orders table. Postgres
// tables are migrated through gorm and have no raw DDL here.
func CreateTableStatements(d Dialect, table string, ifNotExists bool) ([]string, error) {
	if err := ValidateTableName(table); err != nil {
		return nil, err
	}

	guard := ""
	if ifNotExists {
		guard = "IF NOT EXISTS "
	}
	quoted := QuoteIdent(d, table)

	var defs []string
	for _, c := range orderColumns {
		switch d {
		case MySQL:
			defs = append(defs, c.name+" "+c.mysql)
		case SQLite:
			defs = append(defs, c.name+" "+c.sqlite)
		default:
			return nil, fmt.Errorf("no raw DDL for dialect %s", d)
		}
	}

	switch d {
	case MySQL:
		defs = append(defs,
			"INDEX idx_order_id (order_id)",
			"INDEX idx_customer_id (customer_id)",
			"INDEX idx_order_date (order_date)",
		)
		return []string{
			fmt.Sprintf("CREATE TABLE %s%s (\n    %s\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
				guard, quoted, strings.Join(defs, ",\n    ")),
		}, nil
	default:
		return []string{
			fmt.Sprintf("CREATE TABLE %s%s (\n    %s\n)", guard, quoted, strings.Join(defs, ",\n    ")),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (order_id)",
				QuoteIdent(d, "idx_"+table+"_order_id"), quoted),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (customer_id)",
				QuoteIdent(d, "idx_"+table+"_customer_id"), quoted),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (order_date)",
				QuoteIdent(d, "idx_"+table+"_order_date"), quoted),
		}, nil
	}
}

// DropTableStatement returns DROP TABLE IF EXISTS for the table.
func DropTableStatement(d Dialect, table string) (string, error) {
	if err := ValidateTableName(table); err != nil {
		return "", err
	}
	return "DROP TABLE IF EXISTS " + QuoteIdent(d, table), nil
}

// CreateOrdersTable creates the orders table, dropping an existing one
// first when dropFirst is set.
func (db *DB) CreateOrdersTable(ctx context.Context, table string, dropFirst bool) error {
	if db.Dialect == Postgres {
		return db.migrateOrdersTable(ctx, table, dropFirst)
	}

	var statements []string
	if dropFirst {
		drop, err := DropTableStatement(db.Dialect, table)
		if err != nil {
			return err
		}
		statements = append(statements, drop)
	}
	create, err := CreateTableStatements(db.Dialect, table, true)
	if err != nil {
		return err
	}
	statements = append(statements, create...)

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func (db *DB) migrateOrdersTable(ctx context.Context, table string, dropFirst bool) error {
	if err := ValidateTableName(table); err != nil {
		return err
	}
	if db.Gorm == nil {
		return fmt.Errorf("postgres connection has no gorm session")
	}
	session := db.Gorm.WithContext(ctx)
	if dropFirst {
		if err := session.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	if err := session.Table(table).AutoMigrate(&models.Order{}); err != nil {
		return fmt.Errorf("failed to migrate table %s: %w", table, err)
	}
	return nil
}

// DropOrdersTable removes the table if it exists.
func (db *DB) DropOrdersTable(ctx context.Context, table string) error {
	stmt, err := DropTableStatement(db.Dialect, table)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, stmt)
	return err
}

// CountRows returns SELECT COUNT(*) for the table.
func (db *DB) CountRows(ctx context.Context, table string) (int64, error) {
	if err := ValidateTableName(table); err != nil {
		return 0, err
	}
	var n int64
	query := "SELECT COUNT(*) FROM " + QuoteIdent(db.Dialect, table)
	if err := db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return n, nil
}

// Columns lists the column names of the table in ordinal order.
func (db *DB) Columns(ctx context.Context, table string) ([]string, error) {
	if err := ValidateTableName(table); err != nil {
		return nil, err
	}

	var query string
	switch db.Dialect {
	case MySQL:
		query = `SELECT COLUMN_NAME FROM information_schema.COLUMNS
			WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
			ORDER BY ORDINAL_POSITION`
	case SQLite:
		query = `SELECT name FROM pragma_table_info(?) ORDER BY cid`
	case Postgres:
		query = `SELECT column_name FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1
			ORDER BY ordinal_position`
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", db.Dialect)
	}

	rows, err := db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
