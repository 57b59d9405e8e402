package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/isle-solver/internal/planner"
	"github.com/napolitain/isle-solver/internal/solver/strategy"
)

func newCompareCmd(flags *rootFlags) *cobra.Command {
	var maxWorkshops int
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the best strategy for 1 to N workshops",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd, flags, maxWorkshops)
		},
	}
	cmd.Flags().IntVarP(&maxWorkshops, "max", "m", strategy.MaxWorkshops, "Largest workshop count to solve")
	return cmd
}

func runCompare(cmd *cobra.Command, flags *rootFlags, maxWorkshops int) error {
	a, err := setup(cmd, flags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	banner(cmd, flags.quiet)
	out := cmd.OutOrStdout()
	if !flags.quiet {
		color.New(color.FgYellow).Fprintf(out, "🔄 Solving 1 to %d workshops...\n\n", maxWorkshops)
	}

	runs, err := a.planner().Compare(ctx, a.stocks, maxWorkshops)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	printComparison(out, runs)
	if err != nil {
		color.New(color.FgYellow).Fprintln(out, "\n⚠ Comparison interrupted")
	}
	return a.writeMetrics()
}

func printComparison(w io.Writer, runs []*planner.Run) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Workshops", "Cost", "Candidates", "Improvements", "Elapsed", "Status"}),
	)
	for _, run := range runs {
		res := run.Result
		cost := "none"
		if res.Strategy != nil {
			cost = res.Strategy.Cost.String()
		}
		status := "complete"
		if !res.Complete {
			status = "partial"
		}
		_ = table.Append([]string{
			fmt.Sprintf("%d", run.Workshops),
			cost,
			fmt.Sprintf("%d", res.Candidates),
			fmt.Sprintf("%d", res.Improvements),
			formatElapsed(res.Elapsed),
			status,
		})
	}
	_ = table.Render()
}
