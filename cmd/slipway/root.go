package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opskit/slipway/internal/config"
	"github.com/opskit/slipway/pkg/adapters/excel"
)

var rootCmd = &cobra.Command{
	Use:   "slipway",
	Short: "Slipway is a slide-deck onboarding wizard",
	Long:  `Slipway walks service teams through onboarding decision flows, recording outcomes in a spreadsheet and resolving services against PagerDuty.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("file", excel.DefaultFile, "Path to the xlsx workbook backing the row store")
	rootCmd.PersistentFlags().String("deck", "", "Path to a YAML deck definition (default: built-in deck)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// resolveConfig merges flags with environment variables.
func resolveConfig(cmd *cobra.Command) config.Config {
	file, _ := cmd.Flags().GetString("file")
	deckPath, _ := cmd.Flags().GetString("deck")

	return config.FromEnv(config.Config{
		SpreadsheetPath: file,
		DeckPath:        deckPath,
	})
}
