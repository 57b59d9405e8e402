package strategy

import (
	"fmt"
	"strings"
	"time"

	"github.com/napolitain/isle-solver/internal/models"
	"github.com/napolitain/isle-solver/internal/solver/preset"
)

// Strategy assigns one preset to each workshop.
type Strategy struct {
	Presets []*preset.Preset

	// Indices are the positions of Presets in the ranked preset array,
	// outermost first. Nil when the strategy was built by hand.
	Indices []int

	Cost      Cost
	Resources models.Quantities
}

// NewStrategy builds a strategy from presets and costs it.
func NewStrategy(stocks *models.Quantities, g *models.Gathering, presets ...*preset.Preset) *Strategy {
	s := &Strategy{Presets: append([]*preset.Preset(nil), presets...)}
	for _, p := range s.Presets {
		s.Resources.Add(&p.Resources)
	}
	s.Cost = evaluate(stocks, g, &s.Resources)
	return s
}

// Workshops returns the number of presets in the strategy.
func (s *Strategy) Workshops() int {
	return len(s.Presets)
}

// String renders each workshop's recipes followed by the cost.
func (s *Strategy) String() string {
	var b strings.Builder
	for i, p := range s.Presets {
		fmt.Fprintf(&b, "Workshop %d:\n%s\n", i+1, p)
	}
	fmt.Fprintf(&b, "Cost: %s", s.Cost)
	return b.String()
}

// Improvement is published every time the search finds a better strategy.
type Improvement struct {
	Cost    Cost
	Presets []*preset.Preset
	Indices []int

	// Candidates is the approximate number of combinations examined so far.
	Candidates int64

	// Found counts improvements including this one.
	Found   int
	Elapsed time.Duration
}

// Strategy converts the improvement into a Strategy value.
func (imp Improvement) Strategy() *Strategy {
	s := &Strategy{
		Presets: imp.Presets,
		Indices: imp.Indices,
		Cost:    imp.Cost,
	}
	for _, p := range imp.Presets {
		s.Resources.Add(&p.Resources)
	}
	return s
}

// Progress is a throttled snapshot of a running search.
type Progress struct {
	Workshops    int
	Candidates   int64
	Improvements int
	Best         Cost

	// Outer is the current outermost index; OuterTotal is the preset count.
	Outer      int
	OuterTotal int
	Elapsed    time.Duration
}

// Fraction estimates completion from the outermost index. The canonical
// ordering makes later outer indices much more expensive, so the value
// grows slower than wall time.
func (p Progress) Fraction() float64 {
	if p.OuterTotal == 0 {
		return 0
	}
	return float64(p.Outer) / float64(p.OuterTotal)
}

// Result summarises a finished or aborted search.
type Result struct {
	Workshops int

	// Strategy is nil when no recipe-disjoint combination exists.
	Strategy *Strategy

	Candidates   int64
	Improvements int
	Elapsed      time.Duration

	// Complete is false when the search was aborted before exhausting the
	// combination space.
	Complete bool
}
