package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	dropFirst  bool
	dropOnly   bool
	setupTable string
)

var setupCmd = &cobra.Command{
	Use:   "setup-table",
	Short: "Create the orders table in the configured database",
	Long: `Creates the orders table (20 columns, indexed on customer_id and
order_date) in the configured MySQL/TiDB, SQLite or Postgres database.

generate creates the table itself; this command is for preparing a
database ahead of time or resetting it. --drop-only removes the table
without recreating it.`,
	RunE: setupOrdersTable,
}

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().BoolVar(&dropFirst, "drop-first", false, "Drop the existing table before creating")
	setupCmd.Flags().BoolVar(&dropOnly, "drop-only", false, "Drop the table and exit")
	setupCmd.MarkFlagsMutuallyExclusive("drop-first", "drop-only")
	setupCmd.Flags().StringVar(&setupTable, "table", "", "Table name (default: generator.table)")
}

func setupOrdersTable(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fmt.Println("🔧 Setting up orders table...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table := cfg.Generator.Table
	if setupTable != "" {
		table = setupTable
	}

	db, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if dropOnly {
		fmt.Printf("🗑️  Dropping table '%s'...\n", table)
		if err := db.DropOrdersTable(ctx, table); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
		fmt.Printf("✅ Table '%s' dropped\n", table)
		return nil
	}

	if dropFirst {
		fmt.Printf("🗑️  Dropping existing table '%s'...\n", table)
	}
	fmt.Printf("📋 Creating table '%s' (%s)...\n", table, db.Dialect)
	if err := db.CreateOrdersTable(ctx, table, dropFirst); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	columns, err := db.Columns(ctx, table)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Table '%s' ready with %d columns\n", table, len(columns))
	return nil
}
