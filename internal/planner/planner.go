// Package planner runs the enumerate-then-search pipeline for a stock
// vector and caches enumerated presets between runs.
package planner

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/napolitain/isle-solver/internal/metrics"
	"github.com/napolitain/isle-solver/internal/models"
	"github.com/napolitain/isle-solver/internal/solver/preset"
	"github.com/napolitain/isle-solver/internal/solver/strategy"
)

// DefaultCacheTTL is how long an enumerated preset array stays cached.
const DefaultCacheTTL = 10 * time.Minute

// Recorder receives run metrics. *metrics.Collector implements it.
type Recorder interface {
	RecordEnumeration(presets int, elapsed time.Duration)
	RecordCacheLookup(hit bool)
	RecordSearch(run metrics.SearchRun)
}

type nopRecorder struct{}

func (nopRecorder) RecordEnumeration(int, time.Duration) {}
func (nopRecorder) RecordCacheLookup(bool)               {}
func (nopRecorder) RecordSearch(metrics.SearchRun)       {}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the planner logger. Enumerators and searchers inherit it
// with a run_id field.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// WithRecorder sends run metrics to r.
func WithRecorder(r Recorder) Option {
	return func(p *Planner) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithWorkers bounds search concurrency. Zero uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(p *Planner) { p.workers = n }
}

// WithStrictHash makes structural hash collisions fatal.
func WithStrictHash(strict bool) Option {
	return func(p *Planner) { p.strict = strict }
}

// WithCacheTTL sets the preset cache lifetime.
func WithCacheTTL(ttl time.Duration) Option {
	return func(p *Planner) { p.ttl = ttl }
}

// WithProgress forwards throttled search progress to fn.
func WithProgress(fn func(strategy.Progress), interval time.Duration) Option {
	return func(p *Planner) {
		p.progress = fn
		p.progressEvery = interval
	}
}

// Planner owns the catalog and gathering tables and runs searches over them.
// It is safe for concurrent use.
type Planner struct {
	catalog   *models.Catalog
	gathering *models.Gathering

	logger        zerolog.Logger
	recorder      Recorder
	workers       int
	strict        bool
	ttl           time.Duration
	progress      func(strategy.Progress)
	progressEvery time.Duration

	cache *gocache.Cache

	// enumerating serialises cache misses so one stock vector is never
	// enumerated twice concurrently.
	enumerating sync.Mutex
}

// New creates a planner over the catalog and gathering tables.
func New(catalog *models.Catalog, gathering *models.Gathering, opts ...Option) *Planner {
	p := &Planner{
		catalog:   catalog,
		gathering: gathering,
		logger:    zerolog.Nop(),
		recorder:  nopRecorder{},
		ttl:       DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cache = gocache.New(p.ttl, 2*p.ttl)
	return p
}

// Catalog returns the recipe catalog.
func (p *Planner) Catalog() *models.Catalog {
	return p.catalog
}

// Gathering returns the gathering tables.
func (p *Planner) Gathering() *models.Gathering {
	return p.gathering
}

// cacheEntry keeps the stocks next to the presets so a digest collision is
// detected instead of served.
type cacheEntry struct {
	stocks  models.Quantities
	presets []*preset.Preset
}

// stockKey digests a stock vector.
func stockKey(stocks *models.Quantities) string {
	buf := make([]byte, 0, 8*len(stocks))
	for _, q := range stocks {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(q)))
	}
	return strconv.FormatUint(xxhash.Sum64(buf), 16)
}

func (p *Planner) lookup(key string, stocks *models.Quantities) ([]*preset.Preset, bool) {
	v, ok := p.cache.Get(key)
	if !ok {
		return nil, false
	}
	entry := v.(*cacheEntry)
	if entry.stocks != *stocks {
		return nil, false
	}
	return entry.presets, true
}

// Presets returns the ranked preset array for the stocks, enumerating it on
// a cache miss. The returned slice is shared and must not be modified.
func (p *Planner) Presets(ctx context.Context, stocks models.Quantities) ([]*preset.Preset, error) {
	return p.presets(ctx, stocks, p.logger)
}

func (p *Planner) presets(ctx context.Context, stocks models.Quantities, logger zerolog.Logger) ([]*preset.Preset, error) {
	key := stockKey(&stocks)
	if presets, ok := p.lookup(key, &stocks); ok {
		p.recorder.RecordCacheLookup(true)
		logger.Debug().Str("key", key).Int("presets", len(presets)).Msg("preset cache hit")
		return presets, nil
	}

	p.enumerating.Lock()
	defer p.enumerating.Unlock()

	// another caller may have filled the entry while we waited
	if presets, ok := p.lookup(key, &stocks); ok {
		p.recorder.RecordCacheLookup(true)
		return presets, nil
	}
	p.recorder.RecordCacheLookup(false)

	e := preset.NewEnumerator(p.catalog, p.gathering,
		preset.WithLogger(logger),
		preset.WithStrictHash(p.strict),
	)
	presets, err := e.Enumerate(ctx, stocks)
	if err != nil {
		return nil, err
	}
	stats := e.Stats()
	p.recorder.RecordEnumeration(stats.Presets, stats.Elapsed)

	p.cache.SetDefault(key, &cacheEntry{stocks: stocks, presets: presets})
	return presets, nil
}

// Run is one solve: a search for a single workshop count.
type Run struct {
	ID        uuid.UUID
	Workshops int
	Presets   int
	Result    *strategy.Result
}

// Solve finds the cheapest strategy for the workshop count. onImprove may be
// nil. On cancellation the returned Run holds the best strategy found so far
// together with the context error.
func (p *Planner) Solve(ctx context.Context, stocks models.Quantities, workshops int, onImprove func(strategy.Improvement)) (*Run, error) {
	if err := strategy.ValidateWorkshops(workshops); err != nil {
		return nil, err
	}

	run := &Run{ID: uuid.New(), Workshops: workshops}
	logger := p.logger.With().Str("run_id", run.ID.String()).Logger()

	presets, err := p.presets(ctx, stocks, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate presets: %w", err)
	}
	run.Presets = len(presets)

	opts := []strategy.Option{
		strategy.WithLogger(logger),
		strategy.WithWorkers(p.workers),
	}
	if p.progress != nil {
		opts = append(opts, strategy.WithProgress(p.progress, p.progressEvery))
	}
	searcher := strategy.NewSearcher(presets, stocks, p.gathering, opts...)

	res, err := searcher.Search(ctx, workshops, onImprove)
	if res != nil {
		run.Result = res
		p.recordSearch(res)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return run, err
		}
		return nil, err
	}
	return run, nil
}

func (p *Planner) recordSearch(res *strategy.Result) {
	sr := metrics.SearchRun{
		Workshops:    res.Workshops,
		Candidates:   res.Candidates,
		Improvements: res.Improvements,
		Elapsed:      res.Elapsed,
		Complete:     res.Complete,
	}
	if res.Strategy != nil {
		sr.Found = true
		sr.BestCost = res.Strategy.Cost.Primary
	}
	p.recorder.RecordSearch(sr)
}

// Compare solves every workshop count from 1 to maxWorkshops against the
// same cached presets. On cancellation the runs finished so far are
// returned, plus the partial run if any.
func (p *Planner) Compare(ctx context.Context, stocks models.Quantities, maxWorkshops int) ([]*Run, error) {
	if err := strategy.ValidateWorkshops(maxWorkshops); err != nil {
		return nil, err
	}
	runs := make([]*Run, 0, maxWorkshops)
	for k := 1; k <= maxWorkshops; k++ {
		run, err := p.Solve(ctx, stocks, k, nil)
		if run != nil {
			runs = append(runs, run)
		}
		if err != nil {
			return runs, err
		}
	}
	return runs, nil
}
