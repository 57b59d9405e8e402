package preset

import (
	"math"
	"strings"

	"github.com/napolitain/isle-solver/internal/models"
)

// Preset is one workshop's full day: recipes whose hours add up to 24.
// Presets are immutable once built and shared read-only by the search.
type Preset struct {
	Recipes   []*models.Recipe
	Resources models.Quantities
	Set       models.RecipeSet

	// Hash is the structural dedup key of Resources.
	Hash int64

	// LikelyCost estimates the gathering burden given the stocks the
	// preset was built against. Lower ranks first.
	LikelyCost int64

	// MinRemaining is the smallest stock margin left on any resource the
	// preset uses. Higher ranks first among equal LikelyCost.
	MinRemaining int64
}

// Hours returns the total crafting time.
func (p *Preset) Hours() int {
	h := 0
	for _, r := range p.Recipes {
		h += r.Hours
	}
	return h
}

// SharesRecipes reports whether p and o have any recipe in common.
func (p *Preset) SharesRecipes(o *Preset) bool {
	return p.Set.Intersects(&o.Set)
}

// Names returns the recipe names in crafting order.
func (p *Preset) Names() []string {
	out := make([]string, len(p.Recipes))
	for i, r := range p.Recipes {
		out[i] = r.Name
	}
	return out
}

// String lists the recipes one per line as "Name (hours)".
func (p *Preset) String() string {
	var b strings.Builder
	for _, r := range p.Recipes {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Compare orders presets by ascending LikelyCost, then descending
// MinRemaining.
func Compare(a, b *Preset) int {
	switch {
	case a.LikelyCost < b.LikelyCost:
		return -1
	case a.LikelyCost > b.LikelyCost:
		return 1
	case a.MinRemaining > b.MinRemaining:
		return -1
	case a.MinRemaining < b.MinRemaining:
		return 1
	}
	return 0
}

// structuralHash weights each resource quantity by the (index+20)th prime.
func structuralHash(usage *models.Quantities, primes []int64) int64 {
	var h int64
	for i, q := range usage {
		h += primes[i+hashOffset] * int64(q)
	}
	return h
}

// likelyCost charges resources the stocks cannot cover at full weight. For
// covered resources it pretends one, two, then three more presets draw the
// same material and charges any shortfall at half, quarter, then eighth
// weight.
func likelyCost(usage, stocks *models.Quantities, weights *models.Weights) int64 {
	var cost int64
	for i, q := range usage {
		w := weights[i]
		quantity := int64(q - stocks[i])
		if quantity > 0 {
			cost += quantity * w
			continue
		}
		for div := int64(2); div <= 8; div *= 2 {
			quantity += int64(q)
			if quantity > 0 {
				cost += quantity * w / div
				break
			}
		}
	}
	return cost
}

// minRemaining returns the lowest stock-minus-usage over used resources.
func minRemaining(usage, stocks *models.Quantities) int64 {
	rem := int64(math.MaxInt64)
	for i, q := range usage {
		if q == 0 {
			continue
		}
		if left := int64(stocks[i] - q); left < rem {
			rem = left
		}
	}
	return rem
}
