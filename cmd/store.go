package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/studytrack/core"
	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/internal/iostore"
	"github.com/huangsam/studytrack/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeConfig loads the minimal configuration needed to reach the store database.
// It does not open the store, so migrations and clearing stay under the caller's control.
func storeConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("db-backend"))
	connStr := viper.GetString("db-connect")
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid db-backend %q. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.DBBackend = backend
	cfg.DBConnect = connStr
	cfg.DBMigrateTo = viper.GetInt("migrate-to")
	return nil
}

// storeSetup loads the store configuration and opens the store.
func storeSetup() error {
	if err := storeConfig(); err != nil {
		return err
	}
	if err := iostore.InitStores(cfg.DBBackend, cfg.DBConnect); err != nil {
		return fmt.Errorf("failed to initialize stores: %w", err)
	}
	storeManager = iostore.Manager
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeConfigWrapper wraps storeConfig to provide PreRunE for store commands.
func storeConfigWrapper(_ *cobra.Command, _ []string) error {
	return storeConfig()
}

// sqliteFilePath returns the SQLite database file of the configured store.
func sqliteFilePath() string {
	if cfg.DBConnect != "" {
		return cfg.DBConnect
	}
	return contract.GetStoreDBFilePath()
}

// storeCmd focused on store management.
//
// Note: status, clear and migrate use minimal initialization instead of the full
// sharedSetup used by the views. This keeps them usable when filters are invalid.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the answer store",
	Long: `Manage the database that holds answers, progress and notebooks.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (nothing is persisted)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored data
  export  - Write all answers of a user to a Parquet file
  migrate - Move the schema to a given version

Examples:
  # Check store status
  studytrack store status

  # Use PostgreSQL (set connection string via env variable)
  STUDYTRACK_DB_BACKEND=postgresql STUDYTRACK_DB_CONNECT="host=localhost user=postgres dbname=study" studytrack store status`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the backend, schema version and row counts of the store.

Examples:
  studytrack store status`,
	Args:    cobra.NoArgs,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iostore.Manager.GetAttemptStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iostore.PrintStoreStatus(os.Stdout, status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored answers, progress and notebooks",
	Long: `Delete all data from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the studytrack tables

Examples:
  # Clear SQLite store (default)
  studytrack store clear

  # Clear MySQL store (set connection string via env variable)
  STUDYTRACK_DB_BACKEND=mysql STUDYTRACK_DB_CONNECT="..." studytrack store clear`,
	Args:    cobra.NoArgs,
	PreRunE: storeConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ClearStores(cfg.DBBackend, sqliteFilePath(), cfg.DBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeExportCmd exports answers to Parquet.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export answers to a Parquet file",
	Long: `Write every answer of the user to a Parquet file for analysis in other tools.

Examples:
  studytrack store export --output-file answers.parquet
  studytrack store export --user alice --output-file alice.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExportAttempts(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Failed to export answers", err)
		}
	},
}

// storeMigrateCmd migrates the store schema.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the store schema",
	Long: `Apply or roll back schema migrations of the store.

Every other command migrates to the latest version on start. Use this command
to roll back before downgrading the binary.

Examples:
  # Migrate to the latest version
  studytrack store migrate

  # Roll back everything
  studytrack store migrate --migrate-to 0`,
	Args:    cobra.NoArgs,
	PreRunE: storeConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		from, to, err := iostore.MigrateStore(cfg.DBBackend, cfg.DBConnect, cfg.DBMigrateTo)
		if err != nil {
			contract.LogFatal("Failed to migrate store", err)
		}
		if from == to {
			fmt.Printf("Store schema already at version %d.\n", to)
			return
		}
		fmt.Printf("Migrated store schema from version %d to %d.\n", from, to)
	},
}
