package strategy

import (
	"fmt"
	"math"

	"github.com/napolitain/isle-solver/internal/models"
	"github.com/napolitain/isle-solver/internal/solver/preset"
)

// Cost ranks a combination of presets. Primary is the weighted gathering
// effort after stocks and givens. TieBreak is only meaningful when Primary is
// zero and then holds the largest usage-minus-stock over used resources, so
// smaller values leave more stock behind.
type Cost struct {
	Primary  int64
	TieBreak int64
}

// MaxCost is the sentinel for "no combination yet" and for arithmetic that
// overflowed.
var MaxCost = Cost{Primary: math.MaxInt64}

// Less orders by Primary, then by TieBreak.
func (c Cost) Less(o Cost) bool {
	if c.Primary != o.Primary {
		return c.Primary < o.Primary
	}
	return c.TieBreak < o.TieBreak
}

// Compare returns -1, 0 or +1 in the Less order.
func (c Cost) Compare(o Cost) int {
	switch {
	case c.Less(o):
		return -1
	case o.Less(c):
		return 1
	}
	return 0
}

// IsZero reports whether stocks and givens cover everything.
func (c Cost) IsZero() bool {
	return c.Primary == 0
}

func (c Cost) String() string {
	if c == MaxCost {
		return "max"
	}
	if c.Primary == 0 {
		return fmt.Sprintf("0 (slack %d)", c.TieBreak)
	}
	return fmt.Sprintf("%d", c.Primary)
}

// Evaluate computes the cost of running the presets side by side. It is
// pure and independent of preset order.
func Evaluate(stocks *models.Quantities, g *models.Gathering, presets ...*preset.Preset) Cost {
	var usage models.Quantities
	for _, p := range presets {
		usage.Add(&p.Resources)
	}
	return evaluate(stocks, g, &usage)
}

// evaluate costs an already summed usage vector. The search calls it with
// prefix sums so inner loops never re-add outer presets.
func evaluate(stocks *models.Quantities, g *models.Gathering, usage *models.Quantities) Cost {
	var needed [models.ResourceCount]int64
	for i, q := range usage {
		if n := int64(q) - int64(stocks[i]); n > 0 {
			needed[i] = n
		}
	}

	// a negative source need carries into its derived resource; later rows
	// may read that derived resource as their source
	for _, given := range g.Givens {
		needed[given.Derived] -= needed[given.Source]
	}

	var cost int64
	for i, n := range needed {
		if n <= 0 {
			continue
		}
		term := n * g.Costs[i]
		if g.Costs[i] != 0 && term/g.Costs[i] != n {
			return MaxCost
		}
		cost += term
		if cost < 0 {
			return MaxCost
		}
	}
	if cost > 0 {
		return Cost{Primary: cost}
	}

	return Cost{TieBreak: slack(stocks, usage)}
}

// slack is the zero-cost tie-break: the largest usage-minus-stock over the
// resources the combination touches.
func slack(stocks, usage *models.Quantities) int64 {
	worst := int64(math.MinInt64)
	for i, q := range usage {
		if q == 0 {
			continue
		}
		if d := int64(q) - int64(stocks[i]); d > worst {
			worst = d
		}
	}
	if worst == math.MinInt64 {
		return 0
	}
	return worst
}
