package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/isle-solver/internal/models"
	"github.com/napolitain/isle-solver/internal/solver/preset"
)

func newPresetsCmd(flags *rootFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the best-ranked 24-hour presets for your stocks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			presets, err := a.planner().Presets(cmd.Context(), a.stocks)
			if err != nil {
				return err
			}
			if !flags.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%d distinct presets\n\n", len(presets))
			}
			if limit > 0 && limit < len(presets) {
				presets = presets[:limit]
			}
			printPresets(cmd.OutOrStdout(), presets)
			return a.writeMetrics()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of presets to show (0 for all)")
	return cmd
}

func printPresets(w io.Writer, presets []*preset.Preset) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"#", "Recipes", "Likely cost", "Min remaining"}),
	)
	for i, p := range presets {
		_ = table.Append([]string{
			fmt.Sprintf("%d", i+1),
			strings.Join(recipeLabels(p.Recipes), " → "),
			fmt.Sprintf("%d", p.LikelyCost),
			formatRemaining(p.MinRemaining),
		})
	}
	_ = table.Render()
}

func newRecipesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "recipes",
		Short: "List the loaded recipe catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			printRecipes(cmd.OutOrStdout(), a.catalog)
			return nil
		},
	}
}

func printRecipes(w io.Writer, catalog *models.Catalog) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"#", "Recipe", "Hours", "Categories", "Materials"}),
	)
	for i, r := range catalog.Recipes {
		cats := make([]string, 0, 2)
		for _, c := range r.Categories.Categories() {
			cats = append(cats, c.String())
		}
		_ = table.Append([]string{
			fmt.Sprintf("%d", i+1),
			r.Name,
			fmt.Sprintf("%d", r.Hours),
			strings.Join(cats, ", "),
			r.Materials.String(),
		})
	}
	_ = table.Render()
}
