package cmd

import (
	"fmt"

	"github.com/songwei/vitalrisk/internal/assessstore"
	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// Store subcommands skip the full shared setup; they only need backend and
// output settings, not measurement input or weight tables.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	backend := schema.SQLiteBackend
	if backendStr != "" {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd groups assessment history management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the assessment history store",
	Long: `Manage the persisted assessment history.

Every assessment run stores one flattened row plus its ranked risk factors,
with the full structured result riding along as JSON. The history feeds
longitudinal review and Parquet export for analytics tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics
  export  - Export history to Parquet for analytics
  clear   - Remove all stored assessments
  migrate - Run database schema migrations

Examples:
  # Check store status
  vitalrisk store status

  # Export for analysis in pandas/DuckDB
  vitalrisk store export --output-file history.parquet`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display assessment store statistics and connection details",
	Long: `Show detailed information about the assessment history store.

Displays:
- Backend type and location
- Total assessments and risk factor rows stored
- Timestamp of the most recent assessment

Examples:
  # Check store status
  vitalrisk store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := assessstore.NewStore(cfg.StoreBackend, cfg.StoreDBConnect)
		if err != nil {
			contract.LogFatal("Cannot open assessment store", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		assessstore.PrintStoreStatus(status)
	},
}

// storeExportCmd exports the history to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export assessment history to Parquet for BI tools and analytics",
	Long: `Export the stored assessment history to Parquet format.

Exports two datasets:
- Assessments - one row per run with scores and the full result JSON
- Risk factors - the ranked factor rows per assessment

Requires: --output-file parameter

Examples:
  # Export all data
  vitalrisk store export --output-file vitalrisk-history.parquet

  # Use with DuckDB for analysis
  vitalrisk store export --output-file history.parquet
  duckdb -c "SELECT * FROM read_parquet('history.parquet.assessments.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := assessstore.NewStore(cfg.StoreBackend, cfg.StoreDBConnect)
		if err != nil {
			contract.LogFatal("Cannot open assessment store", err)
		}
		defer func() { _ = store.Close() }()

		if err := assessstore.ExecuteExport(store, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export assessment history", err)
		}
	},
}

// storeClearCmd clears the assessment history.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored assessment history",
	Long: `Delete all stored assessments and their ranked risk factors.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  vitalrisk store export --output-file backup.parquet
  vitalrisk store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := assessstore.Clear(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear assessment history", err)
		}
		fmt.Println("Assessment history cleared successfully.")
	},
}

// storeMigrateCmd runs database migrations for the assessment store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the assessment store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  vitalrisk store migrate

  # Rollback to initial state
  vitalrisk store migrate --target-version 0`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := assessstore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
