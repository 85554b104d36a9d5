package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/matthieukhl/ordersynth/internal/config"
)

// Dialect identifies the SQL flavour behind a DB.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

type DB struct {
	*sql.DB
	Dialect Dialect

	// Gorm is only set for the postgres dialect.
	Gorm *gorm.DB
}

// NewConnection creates a new database connection using the provided config
func NewConnection(cfg *config.DBConfig) (*DB, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	switch Dialect(cfg.Driver) {
	case MySQL, SQLite:
		db, err := sql.Open(cfg.Driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		// Configure connection pool
		if cfg.Driver == string(SQLite) {
			// every sqlite connection to :memory: is a separate database
			db.SetMaxOpenConns(1)
		} else if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}

		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return &DB{DB: db, Dialect: Dialect(cfg.Driver)}, nil

	case Postgres:
		gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		return &DB{DB: sqlDB, Dialect: Postgres, Gorm: gdb}, nil
	}

	return nil, fmt.Errorf("unsupported db driver: %s", cfg.Driver)
}

// Wrap adapts an already opened *sql.DB. For postgres a gorm handle is
// layered on top of the same connection pool.
func Wrap(db *sql.DB, dialect Dialect) (*DB, error) {
	wrapped := &DB{DB: db, Dialect: dialect}
	if dialect == Postgres {
		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open gorm session: %w", err)
		}
		wrapped.Gorm = gdb
	}
	return wrapped, nil
}

// BuildDSN returns cfg.DSN when set, otherwise assembles one from the
// individual connection fields.
func BuildDSN(cfg *config.DBConfig) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}

	switch Dialect(cfg.Driver) {
	case SQLite:
		if cfg.Name == "" {
			return "", fmt.Errorf("db.name (database file) is required for sqlite")
		}
		return cfg.Name, nil

	case MySQL:
		if cfg.Host == "" {
			return "", fmt.Errorf("db.dsn or db.host is required")
		}
		port := cfg.Port
		if port == 0 {
			port = 3306
		}
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
		mc.DBName = cfg.Name
		mc.ParseTime = true
		if cfg.SSLMode != "" && cfg.SSLMode != "disable" {
			mc.TLSConfig = "true"
		}
		return mc.FormatDSN(), nil

	case Postgres:
		if cfg.Host == "" {
			return "", fmt.Errorf("db.dsn or db.host is required")
		}
		port := cfg.Port
		if port == 0 {
			port = 5432
		}
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, port, sslMode,
		), nil
	}

	return "", fmt.Errorf("unsupported db driver: %s", cfg.Driver)
}

// HealthCheck performs a simple health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// ServerVersion returns the version string reported by the server.
func (db *DB) ServerVersion(ctx context.Context) (string, error) {
	query := "SELECT VERSION()"
	if db.Dialect == SQLite {
		query = "SELECT sqlite_version()"
	}
	var version string
	if err := db.QueryRowContext(ctx, query).Scan(&version); err != nil {
		return "", fmt.Errorf("failed to query server version: %w", err)
	}
	return version, nil
}
