package sink

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/ordersynth/internal/config"
)

func TestNewSelectsDriver(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{
		Generator: config.GeneratorConfig{Table: "orders"},
		Sink:      config.SinkConfig{Driver: "memory", BatchSize: 10},
	}
	s, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemorySink{}, s)

	cfg.Sink.Driver = "sql"
	cfg.DB = config.DBConfig{Driver: "sqlite", DSN: ":memory:"}
	s, err = New(ctx, cfg, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	assert.IsType(t, &SQLSink{}, s)
	_, ok := s.(Inspector)
	assert.True(t, ok)

	cfg.Sink.Driver = "kafka"
	_, err = New(ctx, cfg, nil)
	assert.Error(t, err)
}

func TestNewReportsConnectFailureAsPersistenceError(t *testing.T) {
	cfg := &config.Config{
		Generator: config.GeneratorConfig{Table: "orders"},
		Sink:      config.SinkConfig{Driver: "sql", BatchSize: 10},
		DB: config.DBConfig{
			Driver: "sqlite",
			DSN:    filepath.Join(t.TempDir(), "missing", "dir", "orders.db"),
		},
	}

	_, err := New(context.Background(), cfg, nil)
	require.Error(t, err)

	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "sql", pe.Sink)
	assert.Equal(t, "connect", pe.Op)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestNewReportsBadSinkSetupAsPersistenceError(t *testing.T) {
	cfg := &config.Config{
		Generator: config.GeneratorConfig{Table: "orders"},
		Sink:      config.SinkConfig{Driver: "sql", BatchSize: 10},
		DB:        config.DBConfig{Driver: "sqlite", DSN: ":memory:"},
	}
	cfg.Generator.Table = "bad-name"

	_, err := New(context.Background(), cfg, nil)
	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "connect", pe.Op)
}
