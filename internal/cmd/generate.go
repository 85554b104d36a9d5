package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matthieukhl/ordersynth/internal/generator"
	"github.com/matthieukhl/ordersynth/internal/logger"
	"github.com/matthieukhl/ordersynth/internal/report"
	"github.com/matthieukhl/ordersynth/internal/sink"
)

var (
	genSeed   int64
	genCount  int
	genTable  string
	genMode   string
	genSink   string
	genDryRun bool
	genVerify bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the order dataset and load it into the configured sink",
	Long: `Generate a synthetic e-commerce order dataset and persist it.

Orders are spread over two years with a fixed seasonal quota, priced from the
product catalog with regional and seasonal adjustments, and discounted
according to customer loyalty, order size and the holiday season.

Sinks:
- sql: MySQL/TiDB or SQLite, depending on db.driver
- postgres: Postgres through gorm
- s3: one CSV object per write
- memory: keep the batch in memory (same as --dry-run)`,
	RunE: generateDataset,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Random seed")
	generateCmd.Flags().IntVar(&genCount, "count", 2000, "Number of orders to generate")
	generateCmd.Flags().StringVar(&genTable, "table", "advanced_sales_data", "Destination table name")
	generateCmd.Flags().StringVar(&genMode, "mode", "replace", "Write mode (replace|append)")
	generateCmd.Flags().StringVar(&genSink, "sink", "sql", "Sink driver (sql|postgres|s3|memory)")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Generate and summarise without persisting")
	generateCmd.Flags().BoolVar(&genVerify, "verify", true, "Count rows and list columns after writing")
}

func generateDataset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fmt.Println("🚀 ordersynth - Dataset Generation")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// flags win over the config file only when given explicitly
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Generator.Seed = genSeed
	}
	if flags.Changed("count") {
		cfg.Generator.Count = genCount
	}
	if flags.Changed("table") {
		cfg.Generator.Table = genTable
	}
	if flags.Changed("mode") {
		cfg.Generator.Mode = genMode
	}
	if flags.Changed("sink") {
		cfg.Sink.Driver = genSink
	}
	if genDryRun {
		cfg.Sink.Driver = "memory"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	mode, err := sink.ParseMode(cfg.Generator.Mode)
	if err != nil {
		return err
	}

	opts := generator.Options{
		Seed:                    cfg.Generator.Seed,
		ReuseProbability:        cfg.Generator.ReuseProbability,
		DiscountGateProbability: cfg.Generator.DiscountGateProbability,
		Epoch:                   generator.DefaultEpoch,
	}
	runID := uuid.NewString()
	log := logger.Log.With(zap.String("run_id", runID))

	g, err := generator.New(cfg.Generator.Model(), opts, log)
	if err != nil {
		return err
	}

	fmt.Printf("\n📊 Generating %d orders (seed %d)...\n", cfg.Generator.Count, cfg.Generator.Seed)
	orders, err := g.Run(cfg.Generator.Count)
	if err != nil {
		return err
	}
	report.Summarize(orders).Print(os.Stdout)

	s, err := sink.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create %s sink: %w", cfg.Sink.Driver, err)
	}
	defer s.Close()

	fmt.Printf("\n📤 Writing to %s sink (%s)...\n", s.Name(), mode)
	n, err := s.Write(ctx, orders, mode)
	if err != nil {
		fmt.Printf("   ❌ Write failed: %v\n", err)
		return err
	}
	fmt.Printf("   ✅ Wrote %d records to '%s'\n", n, cfg.Generator.Table)

	if insp, ok := s.(sink.Inspector); ok && genVerify {
		count, err := insp.CountRows(ctx)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		fmt.Printf("   ✅ Verified: %d records in destination\n", count)

		columns, err := insp.Columns(ctx)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		fmt.Printf("   ✅ Table structure: %d columns\n", len(columns))
	}

	log.Info("dataset generated",
		zap.Int64("seed", cfg.Generator.Seed),
		zap.Int("orders", n),
		zap.Int("customers", g.Ledger().Len()),
		zap.String("sink", s.Name()))

	fmt.Println("\n🎉 Dataset ready!")
	return nil
}
