package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThiagoSantosOFC/starship/internal/app"
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Show what the environment probe detected",
	Run:   runFacts,
}

func runFacts(cmd *cobra.Command, _ []string) {
	f := app.NewSetup().Probe()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "OS family:       %s\n", f.OSFamily())
	fmt.Fprintf(out, "Distribution:    %s\n", f.DistroTitle())
	fmt.Fprintf(out, "Architecture:    %s\n", f.Arch())
	fmt.Fprintf(out, "Sandbox:         %s\n", f.Sandbox())
	fmt.Fprintf(out, "Package manager: %s\n", f.PackageManager())

	if f.IsCompatLayer() {
		fmt.Fprintln(out, "\nNote: Windows compatibility shell detected; package installs are manual.")
	}
}
