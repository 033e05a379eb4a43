package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opskit/slipway"
	"github.com/opskit/slipway/internal/deck"
	"github.com/opskit/slipway/internal/wizard"
)

var validateCmd = &cobra.Command{
	Use:   "validate [deck.yaml]",
	Short: "Check a deck definition for consistency",
	Long:  `Loads the deck and reports duplicate slide IDs, unknown actions, unresolvable navigate targets and a missing entry slide.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Deck is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("deck")
	if len(args) > 0 {
		path = args[0]
	}

	if path == "" {
		// No file given: validate the built-in deck and library wiring.
		_, err := slipway.New()
		return err
	}

	file, err := deck.Load(path)
	if err != nil {
		return err
	}
	if _, err := wizard.NewDeck(file.Entry, file.Slides); err != nil {
		return err
	}

	fmt.Printf("%d slides, entry %q\n", len(file.Slides), file.Entry)
	return nil
}
