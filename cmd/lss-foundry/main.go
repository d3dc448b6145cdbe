// Package main is the entry point for the lss-foundry converter
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/lss-foundry/cmd/lss-foundry/client"
	"github.com/KirkDiggler/lss-foundry/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "lss-foundry",
	Short: "Long Story Short to Foundry VTT converter",
	Long: `lss-foundry converts D&D 5e character sheets exported from Long Story Short
into actor documents for the Foundry VTT dnd5e system, either from the command
line or through a gRPC server with per-user sessions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errors.Describe(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(racesCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
