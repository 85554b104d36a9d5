package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	checkTable  string
	showColumns bool
)

var checkCmd = &cobra.Command{
	Use:   "check-table",
	Short: "Check the orders table in the configured database",
	Long: `Connects to the configured database and reports the server version,
the number of rows in the orders table and its columns. Use it to verify
a load done by generate.`,
	RunE: checkOrdersTable,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkTable, "table", "", "Table name (default: generator.table)")
	checkCmd.Flags().BoolVar(&showColumns, "show-columns", true, "List the column names")
}

func checkOrdersTable(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table := cfg.Generator.Table
	if checkTable != "" {
		table = checkTable
	}

	fmt.Printf("🔍 Checking table '%s'...\n", table)

	db, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	version, err := db.ServerVersion(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Database connected (%s %s)\n", db.Dialect, version)

	columns, err := db.Columns(ctx, table)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		fmt.Printf("⚠️  Table '%s' does not exist\n", table)
		fmt.Println("💡 Run 'ordersynth setup-table' or 'ordersynth generate' first")
		return nil
	}

	count, err := db.CountRows(ctx, table)
	if err != nil {
		return err
	}
	fmt.Printf("   Records: %d\n", count)
	fmt.Printf("   Columns: %d\n", len(columns))
	if showColumns {
		fmt.Printf("   %s\n", strings.Join(columns, ", "))
	}
	return nil
}
