package strategy

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/napolitain/isle-solver/internal/models"
	"github.com/napolitain/isle-solver/internal/solver/preset"
)

// MaxWorkshops is the largest workshop count the searcher handles.
const MaxWorkshops = 4

// ErrUnsupportedWorkshops is returned for workshop counts outside 1..4.
var ErrUnsupportedWorkshops = errors.New("unsupported workshop count")

// ValidateWorkshops checks that k is a supported workshop count.
func ValidateWorkshops(k int) error {
	if k < 1 || k > MaxWorkshops {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrUnsupportedWorkshops, k, MaxWorkshops)
	}
	return nil
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithWorkers bounds the number of concurrent branches for three or more
// workshops. Values below one fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the search logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Searcher) { s.logger = l }
}

// WithProgress registers a callback invoked at most once per interval while
// the search runs. It may be called from any worker goroutine.
func WithProgress(fn func(Progress), interval time.Duration) Option {
	return func(s *Searcher) {
		s.progress = fn
		s.progressEvery = interval
	}
}

// Searcher finds the cheapest recipe-disjoint combination of presets for a
// fixed workshop count. A Searcher is read-only after construction and may
// run several searches concurrently.
type Searcher struct {
	presets   []*preset.Preset
	stocks    models.Quantities
	gathering *models.Gathering

	workers       int
	logger        zerolog.Logger
	progress      func(Progress)
	progressEvery time.Duration
}

// NewSearcher creates a searcher over a ranked preset array.
func NewSearcher(presets []*preset.Preset, stocks models.Quantities, g *models.Gathering, opts ...Option) *Searcher {
	s := &Searcher{
		presets:       presets,
		stocks:        stocks,
		gathering:     g,
		workers:       runtime.GOMAXPROCS(0),
		logger:        zerolog.Nop(),
		progressEvery: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search explores every canonical k-tuple of recipe-disjoint presets and
// returns the cheapest. onImprove, when non-nil, is called each time the
// best strategy changes; calls are serialised and carry non-increasing costs.
//
// Cancelling ctx stops the search between units of work. The returned
// Result then holds the best strategy found so far alongside ctx's error.
func (s *Searcher) Search(ctx context.Context, workshops int, onImprove func(Improvement)) (*Result, error) {
	if err := ValidateWorkshops(workshops); err != nil {
		return nil, err
	}

	r := &run{
		Searcher:  s,
		k:         workshops,
		start:     time.Now(),
		done:      ctx.Done(),
		onImprove: onImprove,
	}
	if s.progress != nil {
		r.sometimes = &rate.Sometimes{Interval: s.progressEvery}
	}

	s.logger.Info().
		Int("workshops", workshops).
		Int("presets", len(s.presets)).
		Int("workers", s.workers).
		Msg("search started")

	var err error
	if workshops <= 2 {
		err = r.sequential(ctx)
	} else {
		err = r.parallel(ctx)
	}

	res := r.result()
	res.Complete = err == nil

	ev := s.logger.Info()
	if err != nil {
		ev = s.logger.Warn().Err(err)
	}
	ev.Int("workshops", workshops).
		Str("cost", bestCost(res).String()).
		Int64("candidates", res.Candidates).
		Int("improvements", res.Improvements).
		Dur("elapsed", res.Elapsed).
		Msg("search finished")

	return res, err
}

func bestCost(res *Result) Cost {
	if res.Strategy == nil {
		return MaxCost
	}
	return res.Strategy.Cost
}

// run is the state of one Search call.
type run struct {
	*Searcher

	k         int
	start     time.Time
	done      <-chan struct{}
	onImprove func(Improvement)

	champ      champion
	candidates atomic.Int64
	outer      atomic.Int64
	sometimes  *rate.Sometimes
}

// window holds the indices fixed so far with running usage and recipe-set
// prefixes, so level l only adds its own preset on top of level l-1.
type window struct {
	idx   [MaxWorkshops]int
	usage [MaxWorkshops]models.Quantities
	set   [MaxWorkshops]models.RecipeSet

	// examined counts innermost candidates not yet added to the shared
	// counter.
	examined int64
}

func (w *window) place(level, i int, p *preset.Preset) {
	w.idx[level] = i
	if level == 0 {
		w.usage[0] = p.Resources
		w.set[0] = p.Set
		return
	}
	w.usage[level] = w.usage[level-1]
	w.usage[level].Add(&p.Resources)
	w.set[level] = w.set[level-1].Union(p.Set)
}

func (r *run) aborted() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// sequential walks the whole canonical space on the calling goroutine and
// publishes every improvement as soon as it is seen.
func (r *run) sequential(ctx context.Context) error {
	var w window
	local := r.champ.peek()
	if !r.descend(&w, 0, len(r.presets), &local, true) {
		return ctx.Err()
	}
	return nil
}

// parallel keeps the outermost loop sequential and fans the second loop out
// over a bounded worker group. Each branch owns its window and local best.
func (r *run) parallel(ctx context.Context) error {
	n := len(r.presets)
	for x := r.k - 1; x < n; x++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.outer.Store(int64(x))

		px := r.presets[x]
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.workers)
		for y := r.k - 2; y < x; y++ {
			py := r.presets[y]
			if px.SharesRecipes(py) {
				continue
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				w := new(window)
				w.place(0, x, px)
				w.place(1, y, py)
				local := r.champ.peek()
				if !r.descend(w, 2, y, &local, false) {
					return gctx.Err()
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// descend fixes index level under bound and recurses inward. The innermost
// level costs each candidate against the running prefix and keeps the best in
// local, which is offered to the champion when the innermost loop ends, or
// immediately when eager. It returns false if the search was aborted; the
// unfinished loop's local best is then dropped.
func (r *run) descend(w *window, level, bound int, local *candidate, eager bool) bool {
	last := level == r.k-1
	if r.aborted() {
		return false
	}

	for i := r.k - 1 - level; i < bound; i++ {
		p := r.presets[i]
		if level == 0 {
			r.outer.Store(int64(i))
			if r.aborted() {
				return false
			}
		}
		if last {
			w.examined++
		}
		if level > 0 && p.Set.Intersects(&w.set[level-1]) {
			continue
		}
		w.place(level, i, p)

		if !last {
			if !r.descend(w, level+1, i, local, eager) {
				return false
			}
			continue
		}

		cand := candidate{
			cost: evaluate(&r.stocks, r.gathering, &w.usage[level]),
			idx:  w.idx,
			k:    r.k,
		}
		if cand.better(local) {
			*local = cand
			if eager {
				r.candidates.Add(w.examined)
				w.examined = 0
				r.champ.offer(cand, r.publish)
			}
		}
	}

	if last {
		r.flush(w, local)
	}
	return true
}

// flush publishes a branch's local best if it still beats the shared one and
// resynchronises local with the latest snapshot.
func (r *run) flush(w *window, local *candidate) {
	r.candidates.Add(w.examined)
	w.examined = 0

	if local.k != 0 {
		cur := r.champ.peek()
		if local.better(&cur) {
			r.champ.offer(*local, r.publish)
		}
	}
	*local = r.champ.peek()

	if r.sometimes != nil {
		r.sometimes.Do(r.report)
	}
}

// publish runs under the champion lock.
func (r *run) publish(c *candidate, found int) {
	presets := make([]*preset.Preset, c.k)
	for i := 0; i < c.k; i++ {
		presets[i] = r.presets[c.idx[i]]
	}
	imp := Improvement{
		Cost:       c.cost,
		Presets:    presets,
		Indices:    c.indices(),
		Candidates: r.candidates.Load(),
		Found:      found,
		Elapsed:    time.Since(r.start),
	}
	r.logger.Debug().
		Int("workshops", r.k).
		Str("cost", c.cost.String()).
		Ints("indices", imp.Indices).
		Int("found", found).
		Msg("improved")
	if r.onImprove != nil {
		r.onImprove(imp)
	}
}

func (r *run) report() {
	best := r.champ.peek()
	r.progress(Progress{
		Workshops:    r.k,
		Candidates:   r.candidates.Load(),
		Improvements: r.champ.improvements(),
		Best:         best.cost,
		Outer:        int(r.outer.Load()),
		OuterTotal:   len(r.presets),
		Elapsed:      time.Since(r.start),
	})
}

func (r *run) result() *Result {
	res := &Result{
		Workshops:    r.k,
		Candidates:   r.candidates.Load(),
		Improvements: r.champ.improvements(),
		Elapsed:      time.Since(r.start),
	}
	best := r.champ.peek()
	if best.k == 0 {
		return res
	}
	st := &Strategy{
		Presets: make([]*preset.Preset, best.k),
		Indices: best.indices(),
		Cost:    best.cost,
	}
	for i := 0; i < best.k; i++ {
		st.Presets[i] = r.presets[best.idx[i]]
		st.Resources.Add(&st.Presets[i].Resources)
	}
	res.Strategy = st
	return res
}
