// Package cmd defines the command-line interface for tempdash.
package cmd

import (
	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the journal subcommands to the parent journal command
	journalCmd.AddCommand(journalStatusCmd)
	journalCmd.AddCommand(journalClearCmd)
	journalCmd.AddCommand(journalExportCmd)
	journalCmd.AddCommand(journalMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("interval", schema.DefaultInterval.String(), "Time between ticks (e.g. 3s, 500ms)")
	rootCmd.PersistentFlags().IntP("capacity", "n", schema.DefaultCapacity, "Number of readings kept in the history window")
	rootCmd.PersistentFlags().Float64("min-temp", schema.DefaultMinTemp, "Lower bound of generated readings in Fahrenheit")
	rootCmd.PersistentFlags().Float64("max-temp", schema.DefaultMaxTemp, "Upper bound of generated readings in Fahrenheit")
	rootCmd.PersistentFlags().Int64("seed", 0, "Seed for reproducible readings (0 = random)")
	rootCmd.PersistentFlags().Int("ticks", 0, "Stop after this many ticks (0 = until interrupted; snapshot defaults to capacity)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("chart-file", "", "Optional path to write the chart to (.svg or .png)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("journal-backend", "", "Session journal backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("journal-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Address for the web dashboard to listen on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of journalMigrateCmd to Viper
	journalMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(journalMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding journal migrate flags", err)
	}
}
