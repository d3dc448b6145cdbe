package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/lss-foundry/internal/entities/dnd5e"
)

var racesCmd = &cobra.Command{
	Use:   "races",
	Short: "Print the racial vision table and the popular race list",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printRaces(cmd.OutOrStdout())
	},
}

func printRaces(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RACE\tVISION\tRANGE")
	for _, entry := range dnd5e.RaceVisionTable() {
		fmt.Fprintf(w, "%s\t%s\t%d ft\n", entry.Race, entry.Mode, entry.Range)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nPopular races:")
	for i, race := range dnd5e.PopularRaces() {
		fmt.Fprintf(out, "  %d. %s\n", i+1, race)
	}

	fmt.Fprintln(out, "\nFeatures:")
	for _, overlay := range dnd5e.AbilityOverlays() {
		fmt.Fprintf(out, "  %s: %s %d ft\n", overlay.Label, overlay.Mode, overlay.Range)
	}
	return nil
}
