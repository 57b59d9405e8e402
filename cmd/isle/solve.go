package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/isle-solver/internal/planner"
	"github.com/napolitain/isle-solver/internal/solver/strategy"
	"github.com/napolitain/isle-solver/internal/tui"
)

func newSolveCmd(flags *rootFlags) *cobra.Command {
	var (
		workshops int
		live      bool
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the cheapest strategy for your workshops",
		Long: `Enumerates every 24-hour preset, then searches all recipe-disjoint
combinations for the workshop count. Interrupting the search prints the
best strategy found so far.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd, flags, workshops, live)
		},
	}
	cmd.Flags().IntVarP(&workshops, "workshops", "w", 0, "Number of workshops, 1-4 (default from stock file or config)")
	cmd.Flags().BoolVar(&live, "tui", false, "Show a live view while searching")
	return cmd
}

func runSolve(cmd *cobra.Command, flags *rootFlags, workshopFlag int, live bool) error {
	a, err := setup(cmd, flags)
	if err != nil {
		return err
	}
	k, err := a.workshops(cmd, workshopFlag)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	infoColor := color.New(color.FgYellow)
	banner(cmd, flags.quiet || live)

	var (
		res   *strategy.Result
		runID string
	)
	if live {
		var view *tui.App
		view = tui.NewApp(k, func(ctx context.Context, onImprove func(strategy.Improvement)) (*strategy.Result, error) {
			run, err := a.planner(planner.WithProgress(view.Progress, a.cfg.Solver.ProgressInterval)).
				Solve(ctx, a.stocks, k, onImprove)
			if run == nil {
				return nil, err
			}
			runID = run.ID.String()
			return run.Result, err
		})
		res, err = view.Run(ctx)
	} else {
		if !flags.quiet {
			infoColor.Fprintf(out, "📦 %d recipes, %d workshop(s)\n", a.catalog.Len(), k)
			infoColor.Fprintln(out, "🔄 Searching...")
		}
		var run *planner.Run
		run, err = a.planner().Solve(ctx, a.stocks, k, func(imp strategy.Improvement) {
			if !flags.quiet {
				printImprovement(out, imp)
			}
		})
		if run != nil {
			res = run.Result
			runID = run.ID.String()
			if !flags.quiet {
				infoColor.Fprintf(out, "   %d presets\n", run.Presets)
			}
		}
	}

	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}
	if interrupted {
		color.New(color.FgYellow).Fprintln(out, "\n⚠ Search interrupted, showing best so far")
	}

	printResult(out, res, runID)
	return a.writeMetrics()
}

func printImprovement(w io.Writer, imp strategy.Improvement) {
	fmt.Fprintf(w, "   ↳ #%d cost %s after %d candidates (%s)\n",
		imp.Found, imp.Cost, imp.Candidates, formatElapsed(imp.Elapsed))
}
