package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opskit/slipway"
	"github.com/opskit/slipway/internal/logging"
	"github.com/opskit/slipway/internal/presentation/tui"
	"github.com/opskit/slipway/pkg/adapters/excel"
	"github.com/opskit/slipway/pkg/adapters/pagerduty"
	"github.com/opskit/slipway/pkg/ports"
	"github.com/opskit/slipway/pkg/runner"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the onboarding wizard interactively",
	Long:  `Starts the wizard in the terminal, appending outcomes to the configured spreadsheet.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInteractive(cmd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("plain", false, "Disable markdown rendering (raw output)")
	runCmd.Flags().String("session", "local", "Session identifier used in logs")

	// Make 'run' the default when no subcommand is given.
	rootCmd.Run = runCmd.Run
}

func runInteractive(cmd *cobra.Command) error {
	cfg := resolveConfig(cmd)
	level, _ := cmd.Flags().GetString("log-level")
	plain, _ := cmd.Flags().GetBool("plain")
	sessionID, _ := cmd.Flags().GetString("session")

	logger := logging.New(logging.ParseLevel(level))

	opts := []slipway.Option{slipway.WithLogger(logger)}
	if cfg.DeckPath != "" {
		opts = append(opts, slipway.WithDeckFile(cfg.DeckPath))
	}
	wiz, err := slipway.New(opts...)
	if err != nil {
		return err
	}

	var directory ports.Directory
	if cfg.PagerDutyToken != "" {
		var clientOpts []pagerduty.ClientOption
		if cfg.PagerDutyBaseURL != "" {
			clientOpts = append(clientOpts, pagerduty.WithBaseURL(cfg.PagerDutyBaseURL))
		}
		directory = pagerduty.NewClient(cfg.PagerDutyToken, clientOpts...)
	} else {
		directory = pagerduty.NewFixture()
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		tui.PrintBanner()
	}

	r := runner.New(directory, excel.NewStore(cfg.SpreadsheetPath))
	r.Logger = logger
	if interactive && !plain {
		r.Renderer = tui.NewRenderer()
	}

	state, err := wiz.Start(sessionID)
	if err != nil {
		return err
	}

	_, err = r.Run(context.Background(), wiz.Engine(), state)
	return err
}
