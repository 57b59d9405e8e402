package preset

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/napolitain/isle-solver/internal/models"
)

var (
	// ErrNoOpeningRecipes means the catalog cannot start a single day.
	ErrNoOpeningRecipes = errors.New("catalog has no minimum-duration recipes")

	// ErrInvariant reports a preset that breaks the construction rules.
	ErrInvariant = errors.New("preset invariant violated")

	// ErrHashCollision reports two distinct usage vectors with the same
	// structural hash. Only returned in strict mode.
	ErrHashCollision = errors.New("structural hash collision")
)

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithLogger sets the logger used for enumeration diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Enumerator) { e.logger = l }
}

// WithStrictHash makes any structural hash collision fatal instead of
// falling back to a full vector comparison.
func WithStrictHash(strict bool) Option {
	return func(e *Enumerator) { e.strict = strict }
}

// Stats describes the last enumeration.
type Stats struct {
	Presets    int
	Duplicates int
	Collisions int
	Elapsed    time.Duration
}

// Enumerator builds every valid 24-hour preset from a catalog.
type Enumerator struct {
	catalog   *models.Catalog
	gathering *models.Gathering
	primes    []int64
	logger    zerolog.Logger
	strict    bool
	stats     Stats
}

// NewEnumerator creates an enumerator over the catalog. The gathering
// tables feed the ranking heuristic.
func NewEnumerator(catalog *models.Catalog, gathering *models.Gathering, opts ...Option) *Enumerator {
	e := &Enumerator{
		catalog:   catalog,
		gathering: gathering,
		primes:    firstPrimes(models.ResourceCount + hashOffset),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats returns counters from the most recent Enumerate call.
func (e *Enumerator) Stats() Stats {
	return e.stats
}

// build is the mutable state of one enumeration.
type build struct {
	e      *Enumerator
	stocks *models.Quantities

	chain []*models.Recipe
	used  models.RecipeSet
	hours int
	usage models.Quantities

	// seen buckets usage vectors by structural hash.
	seen map[int64][]*models.Quantities
	out  []*Preset

	duplicates int
	collisions int
}

// Enumerate returns every valid preset for the stocks, deduplicated by
// resource usage and sorted by rank. Cancelling ctx stops between opening
// recipes.
func (e *Enumerator) Enumerate(ctx context.Context, stocks models.Quantities) ([]*Preset, error) {
	start := time.Now()
	if e.catalog == nil || e.catalog.Len() == 0 {
		return nil, ErrNoOpeningRecipes
	}
	openers := e.catalog.Openers()
	if len(openers) == 0 {
		return nil, ErrNoOpeningRecipes
	}

	b := &build{
		e:      e,
		stocks: &stocks,
		chain:  make([]*models.Recipe, 0, models.HoursPerDay/e.catalog.MinHours),
		seen:   make(map[int64][]*models.Quantities),
	}

	for _, r := range openers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		before := len(b.out)
		b.push(r)
		err := b.extend()
		b.pop()
		if err != nil {
			return nil, err
		}
		e.logger.Debug().
			Str("opener", r.Name).
			Int("presets", len(b.out)-before).
			Msg("enumerated opener")
	}

	slices.SortStableFunc(b.out, Compare)

	e.stats = Stats{
		Presets:    len(b.out),
		Duplicates: b.duplicates,
		Collisions: b.collisions,
		Elapsed:    time.Since(start),
	}
	e.logger.Info().
		Int("presets", e.stats.Presets).
		Int("duplicates", e.stats.Duplicates).
		Int("hash_collisions", e.stats.Collisions).
		Dur("elapsed", e.stats.Elapsed).
		Msg("presets enumerated")

	return b.out, nil
}

func (b *build) push(r *models.Recipe) {
	b.chain = append(b.chain, r)
	b.used.Add(r.Index)
	b.hours += r.Hours
	b.usage.Add(&r.Materials)
}

func (b *build) pop() {
	r := b.chain[len(b.chain)-1]
	b.chain = b.chain[:len(b.chain)-1]
	b.used.Remove(r.Index)
	b.hours -= r.Hours
	for i, q := range r.Materials {
		b.usage[i] -= q
	}
}

func (b *build) extend() error {
	if b.hours == models.HoursPerDay {
		return b.emit()
	}

	minHours := b.e.catalog.MinHours
	// Nothing is shorter than minHours, so no recipe can close this gap.
	if b.hours > models.HoursPerDay-minHours {
		return nil
	}

	last := b.chain[len(b.chain)-1]
	for _, r := range b.e.catalog.Recipes {
		if b.used.Has(r.Index) {
			continue
		}
		if !r.SharesCategory(last) {
			continue
		}
		// Shortest recipes only open or close a day.
		if r.Hours == minHours && b.hours < models.HoursPerDay-minHours {
			continue
		}
		b.push(r)
		err := b.extend()
		b.pop()
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *build) emit() error {
	h := structuralHash(&b.usage, b.e.primes)
	for _, other := range b.seen[h] {
		if *other == b.usage {
			b.duplicates++
			return nil
		}
	}
	if len(b.seen[h]) > 0 {
		b.collisions++
		if b.e.strict {
			return fmt.Errorf("%w: hash %d for %v", ErrHashCollision, h, b.chain)
		}
	}

	p := &Preset{
		Recipes:   slices.Clone(b.chain),
		Resources: b.usage,
		Set:       b.used,
		Hash:      h,
	}
	if err := validate(p, b.e.catalog.MinHours); err != nil {
		return err
	}
	p.LikelyCost = likelyCost(&p.Resources, b.stocks, &b.e.gathering.Costs)
	p.MinRemaining = minRemaining(&p.Resources, b.stocks)

	b.seen[h] = append(b.seen[h], &p.Resources)
	b.out = append(b.out, p)
	return nil
}

// validate checks the construction rules on a finished preset.
func validate(p *Preset, minHours int) error {
	if h := p.Hours(); h != models.HoursPerDay {
		return fmt.Errorf("%w: %d hours in %v", ErrInvariant, h, p.Names())
	}
	if p.Set.Len() != len(p.Recipes) {
		return fmt.Errorf("%w: repeated recipe in %v", ErrInvariant, p.Names())
	}
	if p.Recipes[0].Hours != minHours {
		return fmt.Errorf("%w: %s cannot open a day", ErrInvariant, p.Recipes[0].Name)
	}
	for i := 1; i < len(p.Recipes); i++ {
		if !p.Recipes[i].SharesCategory(p.Recipes[i-1]) {
			return fmt.Errorf("%w: %s does not chain from %s", ErrInvariant, p.Recipes[i].Name, p.Recipes[i-1].Name)
		}
		if p.Recipes[i].Hours == minHours && i != len(p.Recipes)-1 {
			return fmt.Errorf("%w: %s placed mid-day", ErrInvariant, p.Recipes[i].Name)
		}
	}
	return nil
}
