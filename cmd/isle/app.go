package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/napolitain/isle-solver/internal/config"
	"github.com/napolitain/isle-solver/internal/loader"
	"github.com/napolitain/isle-solver/internal/logging"
	"github.com/napolitain/isle-solver/internal/metrics"
	"github.com/napolitain/isle-solver/internal/models"
	"github.com/napolitain/isle-solver/internal/planner"
	"github.com/napolitain/isle-solver/internal/solver/strategy"
)

// app is everything a command needs after configuration is resolved.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	catalog   *models.Catalog
	gathering *models.Gathering
	inventory *models.Inventory
	stocks    models.Quantities
	collector *metrics.Collector
}

// loadConfig reads the config and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig(flags.configFile)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("data") {
		cfg.Data.Dir = flags.dataDir
	}
	if changed("stock") {
		cfg.Data.StockFile = flags.stockFile
	}
	if changed("divisor") {
		cfg.Data.StockDivisor = flags.divisor
	}
	if changed("workers") {
		cfg.Solver.Workers = flags.workers
	}
	if changed("strict-hash") {
		cfg.Solver.StrictHash = flags.strictHash
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = flags.logFormat
	}
	if changed("metrics-file") {
		cfg.Metrics.Textfile = flags.metricsFile
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, flags *rootFlags) (*app, error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	catalog, err := loader.LoadCatalog(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("error loading recipes: %w", err)
	}
	gathering, err := loader.LoadGathering(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("error loading gathering tables: %w", err)
	}

	inv, warnings, err := loader.LoadInventory(cfg.Data.StockFile, logger)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// a missing stock file means empty stocks
		if !flags.quiet {
			color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "Warning: %s not found, assuming empty stocks\n", cfg.Data.StockFile)
		}
		inv = &models.Inventory{}
	case err != nil:
		return nil, err
	}
	if !flags.quiet {
		for _, w := range warnings {
			color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
		}
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		catalog:   catalog,
		gathering: gathering,
		inventory: inv,
		stocks:    inv.Stocks(cfg.Data.StockDivisor),
		collector: metrics.NewCollector(),
	}, nil
}

func (a *app) planner(opts ...planner.Option) *planner.Planner {
	base := []planner.Option{
		planner.WithLogger(a.logger),
		planner.WithRecorder(a.collector),
		planner.WithWorkers(a.cfg.Solver.Workers),
		planner.WithStrictHash(a.cfg.Solver.StrictHash),
		planner.WithCacheTTL(a.cfg.Cache.TTL),
	}
	return planner.New(a.catalog, a.gathering, append(base, opts...)...)
}

// workshops resolves the workshop count: an explicit flag, then the stock
// file, then the config.
func (a *app) workshops(cmd *cobra.Command, flagValue int) (int, error) {
	k := a.cfg.Solver.Workshops
	switch {
	case cmd.Flags().Changed("workshops"):
		k = flagValue
	case a.inventory.Workshops > 0:
		k = a.inventory.Workshops
	}
	if err := strategy.ValidateWorkshops(k); err != nil {
		return 0, err
	}
	return k, nil
}

func (a *app) writeMetrics() error {
	if a.cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := a.collector.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
