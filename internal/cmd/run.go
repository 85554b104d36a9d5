package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/ordersynth/internal/config"
	"github.com/matthieukhl/ordersynth/internal/database"
	"github.com/matthieukhl/ordersynth/internal/generator"
	"github.com/matthieukhl/ordersynth/internal/logger"
	"github.com/matthieukhl/ordersynth/internal/server"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the ordersynth HTTP API",
	Long: `Start the ordersynth HTTP API which provides:
- GET /api/health: liveness, plus a database ping when one is configured
- GET /api/orders?seed=&count=: generated orders as JSON
- GET /api/summary?seed=&count=: dataset summary`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fmt.Println("🚀 ordersynth API Starting...")

	fmt.Println("📝 Loading configuration...")
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	model := cfg.Generator.Model()
	opts := generator.Options{
		Seed:                    cfg.Generator.Seed,
		ReuseProbability:        cfg.Generator.ReuseProbability,
		DiscountGateProbability: cfg.Generator.DiscountGateProbability,
		Epoch:                   generator.DefaultEpoch,
	}
	if err := generator.Validate(model, opts); err != nil {
		return err
	}

	var db *database.DB
	if databaseConfigured(cfg.DB) {
		fmt.Println("🔌 Connecting to database...")
		db, err = connectDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		fmt.Println("✅ Database connected successfully")
	}

	fmt.Println("⚙️  Setting up server...")
	srv := server.NewServer(db, model, opts, logger.Log)

	fmt.Printf("🌐 Starting server on %s...\n", cfg.Server.Addr)
	if err := srv.Start(ctx, cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// databaseConfigured reports whether the db section names anything to
// connect to. The API works without a database.
func databaseConfigured(db config.DBConfig) bool {
	return db.DSN != "" || db.Host != "" || db.SecretName != "" ||
		(db.Driver == string(database.SQLite) && db.Name != "")
}
