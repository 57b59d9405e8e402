package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// flags shared by every command; zero values defer to the config file.
type rootFlags struct {
	configFile  string
	dataDir     string
	stockFile   string
	divisor     int
	workers     int
	strictHash  bool
	logLevel    string
	logFormat   string
	metricsFile string
	quiet       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "isle",
		Short: "Island Sanctuary workshop planner",
		Long: `Finds the cheapest assignment of 24-hour recipe schedules to
Island Sanctuary workshops given the materials in your Isleventory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "Path to config file (default ./isle.yaml)")
	pf.StringVarP(&flags.dataDir, "data", "d", "", "Directory with recipes.json and gathering.json (default built-in)")
	pf.StringVarP(&flags.stockFile, "stock", "s", "", "Isleventory stock file (default Isleventory.txt)")
	pf.IntVar(&flags.divisor, "divisor", 0, "Divide stock counts by this before solving (default 5)")
	pf.IntVar(&flags.workers, "workers", 0, "Concurrent search branches (default GOMAXPROCS)")
	pf.BoolVar(&flags.strictHash, "strict-hash", false, "Fail on structural hash collisions")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text, json")
	pf.StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "Minimal output")

	rootCmd.AddCommand(
		newSolveCmd(flags),
		newCompareCmd(flags),
		newPresetsCmd(flags),
		newRecipesCmd(flags),
		newStockCmd(flags),
	)
	return rootCmd
}

func banner(cmd *cobra.Command, quiet bool) {
	if quiet {
		return
	}
	titleColor := color.New(color.FgCyan, color.Bold)
	out := cmd.OutOrStdout()
	titleColor.Fprintln(out, "\n╭───────────────────────────╮")
	titleColor.Fprintln(out, "│  Island Sanctuary         │")
	titleColor.Fprintln(out, "│  Workshop Planner         │")
	titleColor.Fprintln(out, "╰───────────────────────────╯")
	fmt.Fprintln(out)
}
