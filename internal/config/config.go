package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/matthieukhl/ordersynth/internal/models"
)

type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	DB        DBConfig        `mapstructure:"db"`
	Sink      SinkConfig      `mapstructure:"sink"`
	AWS       AWSConfig       `mapstructure:"aws"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
}

type GeneratorConfig struct {
	Seed                    int64   `mapstructure:"seed"`
	Count                   int     `mapstructure:"count"`
	Table                   string  `mapstructure:"table"`
	Mode                    string  `mapstructure:"mode"`
	ReuseProbability        float64 `mapstructure:"reuse_probability"`
	DiscountGateProbability float64 `mapstructure:"discount_gate_probability"`

	Catalog  []models.Category `mapstructure:"catalog"`
	Regions  []models.Region   `mapstructure:"regions"`
	Segments []models.Segment  `mapstructure:"segments"`
}

type DBConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	SecretName   string `mapstructure:"secret_name"`
}

type SinkConfig struct {
	Driver    string `mapstructure:"driver"`
	BatchSize int    `mapstructure:"batch_size"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
}

type AWSConfig struct {
	Region     string `mapstructure:"region"`
	Endpoint   string `mapstructure:"endpoint"`
	UseSecrets bool   `mapstructure:"use_secrets"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Env   string `mapstructure:"env"`
	Level string `mapstructure:"level"`
}

// Model returns the static tables, falling back to the built-in ones for
// any table the configuration leaves empty.
func (g GeneratorConfig) Model() models.Model {
	m := models.DefaultModel()
	if len(g.Catalog) > 0 {
		m.Catalog = g.Catalog
	}
	if len(g.Regions) > 0 {
		m.Regions = g.Regions
	}
	if len(g.Segments) > 0 {
		m.Segments = g.Segments
	}
	return m
}

// setDefaults registers every key, including empty ones, so that
// AutomaticEnv can override them during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("generator.seed", 42)
	v.SetDefault("generator.count", 2000)
	v.SetDefault("generator.table", "advanced_sales_data")
	v.SetDefault("generator.mode", "replace")
	v.SetDefault("generator.reuse_probability", 0.3)
	v.SetDefault("generator.discount_gate_probability", 0.3)

	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.maxOpenConns", 10)
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 0)
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "")
	v.SetDefault("db.sslmode", "require")
	v.SetDefault("db.secret_name", "")

	v.SetDefault("sink.driver", "sql")
	v.SetDefault("sink.batch_size", 500)
	v.SetDefault("sink.bucket", "")
	v.SetDefault("sink.prefix", "ordersynth")

	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("aws.use_secrets", false)

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("log.env", "development")
	v.SetDefault("log.level", "")
}

// LoadConfig loads configuration from a config.yaml and ORDERSYNTH_*
// environment variables. An empty path searches the default locations; a
// missing file there is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./deploy/")
		v.AddConfigPath("./")
		v.AddConfigPath("$HOME/.ordersynth/")
		v.AddConfigPath("/etc/ordersynth/")
	}

	// ORDERSYNTH_DB_DSN overrides db.dsn
	v.SetEnvPrefix("ORDERSYNTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the plumbing settings. The generator tables are checked
// by the generator itself.
func (c *Config) Validate() error {
	switch c.Generator.Mode {
	case "replace", "append":
	default:
		return fmt.Errorf("generator.mode must be replace or append, got %q", c.Generator.Mode)
	}
	switch c.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported db driver: %s", c.DB.Driver)
	}
	switch c.Sink.Driver {
	case "sql", "postgres", "s3", "memory":
	default:
		return fmt.Errorf("unsupported sink driver: %s", c.Sink.Driver)
	}
	if c.Sink.BatchSize <= 0 {
		return fmt.Errorf("sink.batch_size must be positive, got %d", c.Sink.BatchSize)
	}
	if c.Sink.Driver == "s3" && c.Sink.Bucket == "" {
		return fmt.Errorf("sink.bucket is required for the s3 sink")
	}
	return nil
}
