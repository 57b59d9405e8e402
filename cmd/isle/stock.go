package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/isle-solver/internal/loader"
	"github.com/napolitain/isle-solver/internal/models"
)

func newStockCmd(flags *rootFlags) *cobra.Command {
	var initFile bool
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Show the parsed stock file, or write an empty template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if initFile {
				return writeStockTemplate(cmd, flags)
			}
			a, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			return loader.WriteInventory(cmd.OutOrStdout(), a.inventory)
		},
	}
	cmd.Flags().BoolVar(&initFile, "init", false, "Write a zeroed stock file if none exists")
	return cmd
}

func writeStockTemplate(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	path := cfg.Data.StockFile

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer f.Close()

	inv := &models.Inventory{Workshops: cfg.Solver.Workshops}
	if err := loader.WriteInventory(f, inv); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}
