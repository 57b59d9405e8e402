package main

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/isle-solver/internal/models"
	"github.com/napolitain/isle-solver/internal/solver/strategy"
)

func printResult(w io.Writer, res *strategy.Result, runID string) {
	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed)

	if res == nil || res.Strategy == nil {
		errorColor.Fprintln(w, "\n✗ No recipe-disjoint combination of presets exists")
		return
	}

	st := res.Strategy
	successColor.Fprintf(w, "\n✓ Best strategy for %d workshop(s): cost %s\n\n", len(st.Presets), st.Cost)

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Workshop", "Recipe", "Hours", "Start"}),
	)
	for i, p := range st.Presets {
		start := 0
		for _, r := range p.Recipes {
			_ = table.Append([]string{
				fmt.Sprintf("%d", i+1),
				r.Name,
				fmt.Sprintf("%d", r.Hours),
				fmt.Sprintf("%02d:00", start),
			})
			start += r.Hours
		}
	}
	_ = table.Render()

	fmt.Fprintln(w)
	fmt.Fprintln(w, st)
	fmt.Fprintf(w, "\n   Candidates: %d  Improvements: %d  Elapsed: %s\n",
		res.Candidates, res.Improvements, formatElapsed(res.Elapsed))
	if runID != "" {
		fmt.Fprintf(w, "   Run: %s\n", runID)
	}
}

func recipeLabels(recipes []*models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.String()
	}
	return out
}

func formatRemaining(v int64) string {
	if v == math.MaxInt64 {
		return "-"
	}
	return fmt.Sprintf("%d", v)
}

func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(10 * time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
