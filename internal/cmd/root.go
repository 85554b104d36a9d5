package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matthieukhl/ordersynth/internal/awsutil"
	"github.com/matthieukhl/ordersynth/internal/config"
	"github.com/matthieukhl/ordersynth/internal/database"
	"github.com/matthieukhl/ordersynth/internal/logger"
)

var (
	cfgFile string
	envName string
)

var rootCmd = &cobra.Command{
	Use:   "ordersynth",
	Short: "ordersynth - synthetic e-commerce order generator",
	Long: `ordersynth generates a deterministic, realistic e-commerce sales dataset
(customers, seasonal pricing, discounts, shipping, satisfaction ratings)
and loads it into MySQL/TiDB, SQLite, Postgres or S3.

The same seed and count always produce the same orders. The dataset can
also be previewed over HTTP with the run command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// a missing .env is fine
		_ = godotenv.Load()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: search ./deploy, ., $HOME/.ordersynth, /etc/ordersynth)")
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "Logging environment (development|production), overrides log.env")
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the configuration and sets up the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if envName != "" {
		cfg.Log.Env = envName
	}
	if err := logger.Initialize(cfg.Log.Env, cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// connectDB opens the configured database, pulling credentials from
// Secrets Manager when enabled.
func connectDB(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	dbCfg, err := awsutil.ResolveDBConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database credentials: %w", err)
	}
	db, err := database.NewConnection(&dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
