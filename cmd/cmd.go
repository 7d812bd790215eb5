// Package cmd defines the command-line interface for studytrack.
package cmd

import (
	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(evolutionCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(weeklyCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(notebookCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the notebook subcommands to the parent notebook command
	notebookCmd.AddCommand(notebookCreateCmd)
	notebookCmd.AddCommand(notebookListCmd)
	notebookCmd.AddCommand(notebookDeleteCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("user", "u", contract.DefaultUserID, "User whose attempts are recorded and read")
	rootCmd.PersistentFlags().String("start", "", "Start date in ISO8601, YYYY-MM-DD or time ago (empty = unbounded)")
	rootCmd.PersistentFlags().String("end", "", "End date in ISO8601, YYYY-MM-DD or time ago (empty = now)")
	rootCmd.PersistentFlags().StringP("subject", "s", "", "Only use attempts of this subject")
	rootCmd.PersistentFlags().StringP("topic", "t", "", "Only use attempts of this topic")
	rootCmd.PersistentFlags().Bool("incorrect", false, "Only use incorrect answers")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("timezone", "", "IANA timezone for dates and day boundaries (default: local)")
	rootCmd.PersistentFlags().String("db-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored cells in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in headers and progress lines (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of evolutionCmd to Viper
	evolutionCmd.Flags().String("metric", schema.CountsMetric.String(), "Series values: counts or percentage")
	evolutionCmd.Flags().Int("periods", schema.DefaultPeriods, "Target number of periods for windows longer than 15 days")
	if err := viper.BindPFlags(evolutionCmd.Flags()); err != nil {
		contract.LogFatal("Error binding evolution flags", err)
	}

	// Bind all flags of recordCmd to Viper
	recordCmd.Flags().String("question", "", "ID of the answered question")
	recordCmd.Flags().String("answer", "", "The answer given")
	recordCmd.Flags().String("correct", "", "Whether the answer was correct (yes/no/true/false/1/0)")
	if err := viper.BindPFlags(recordCmd.Flags()); err != nil {
		contract.LogFatal("Error binding record flags", err)
	}

	// Bind all flags of notebookCreateCmd to Viper
	notebookCreateCmd.Flags().String("name", "", "Name of the notebook")
	notebookCreateCmd.Flags().String("questions", "", "Comma-separated question IDs (default: questions matching the filters)")
	if err := viper.BindPFlags(notebookCreateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding notebook flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("migrate-to", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
