package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opskit/slipway"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of slipway",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("slipway version %s\n", strings.TrimSpace(slipway.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
