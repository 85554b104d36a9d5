package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/ordersynth/internal/models"
)

const sampleConfig = `
generator:
  seed: 7
  count: 150
  table: demo_orders
  mode: append
  catalog:
    - name: Garden
      products:
        - name: Hose
          base_price: 25
          margin: 10
          seasonality: 1.3
        - name: Rake
          base_price: 18
          margin: 6
          seasonality: 0.9
  regions:
    - name: Coast
      population_weight: 0.7
      income_modifier: 1.1
      tech_affinity: 1.0
    - name: Inland
      population_weight: 0.3
      income_modifier: 0.95
      tech_affinity: 0.9
db:
  driver: sqlite
  dsn: file:demo.db
sink:
  driver: sql
  batch_size: 50
server:
  addr: ":9090"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Generator.Seed)
	assert.Equal(t, 150, cfg.Generator.Count)
	assert.Equal(t, "demo_orders", cfg.Generator.Table)
	assert.Equal(t, "append", cfg.Generator.Mode)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "file:demo.db", cfg.DB.DSN)
	assert.Equal(t, 50, cfg.Sink.BatchSize)
	assert.Equal(t, ":9090", cfg.Server.Addr)

	// unset keys keep their defaults
	assert.Equal(t, 0.3, cfg.Generator.ReuseProbability)
	assert.Equal(t, 10, cfg.DB.MaxOpenConns)

	m := cfg.Generator.Model()
	require.Len(t, m.Catalog, 1)
	assert.Equal(t, "Garden", m.Catalog[0].Name)
	require.Len(t, m.Catalog[0].Products, 2)
	assert.Equal(t, "Rake", m.Catalog[0].Products[1].Name)
	assert.Equal(t, 18.0, m.Catalog[0].Products[1].BasePrice)
	require.Len(t, m.Regions, 2)
	assert.Equal(t, 0.7, m.Regions[0].PopulationWeight)
	// segments were not configured
	assert.Equal(t, models.DefaultSegments(), m.Segments)
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Generator.Seed)
	assert.Equal(t, 2000, cfg.Generator.Count)
	assert.Equal(t, "advanced_sales_data", cfg.Generator.Table)
	assert.Equal(t, "replace", cfg.Generator.Mode)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "sql", cfg.Sink.Driver)
	assert.Equal(t, models.DefaultModel(), cfg.Generator.Model())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ORDERSYNTH_GENERATOR_COUNT", "25")
	t.Setenv("ORDERSYNTH_DB_DSN", "user:pw@tcp(localhost:4000)/shop")

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Generator.Count)
	assert.Equal(t, "user:pw@tcp(localhost:4000)/shop", cfg.DB.DSN)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad mode", func(c *Config) { c.Generator.Mode = "upsert" }},
		{"bad db driver", func(c *Config) { c.DB.Driver = "oracle" }},
		{"bad sink driver", func(c *Config) { c.Sink.Driver = "kafka" }},
		{"zero batch", func(c *Config) { c.Sink.BatchSize = 0 }},
		{"s3 without bucket", func(c *Config) { c.Sink.Driver = "s3" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
	assert.NoError(t, validConfig().Validate())
}

func validConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{Mode: "replace"},
		DB:        DBConfig{Driver: "mysql"},
		Sink:      SinkConfig{Driver: "sql", BatchSize: 100},
	}
}
