package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ThiagoSantosOFC/starship/internal/app"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the steps a run would execute, in order",
	RunE:  runPlan,
}

func runPlan(cmd *cobra.Command, _ []string) error {
	setup := app.NewSetup(app.WithLogger(newLogger()))

	graph, f, err := setup.Plan(cfgFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Host: %s\n\n", f)

	for i, step := range graph.Steps() {
		line := fmt.Sprintf("%2d. %s", i+1, step.ID())
		if deps := step.DependsOn(); len(deps) > 0 {
			names := make([]string, len(deps))
			for j, dep := range deps {
				names[j] = dep.String()
			}
			line += fmt.Sprintf("  (after %s)", strings.Join(names, ", "))
		}
		if step.Critical() {
			line += "  [critical]"
		}
		fmt.Fprintln(out, line)
	}

	fmt.Fprintf(out, "\n%d steps\n", graph.Len())
	return nil
}
