package models

import "fmt"

// Given links two resources gathered together: every Source gathered also
// yields one Derived.
type Given struct {
	Source  Resource
	Derived Resource
}

func (g Given) String() string {
	return fmt.Sprintf("%s -> %s", g.Source, g.Derived)
}

// Weights holds the gathering effort of one unit of each resource.
type Weights [ResourceCount]int64

// Gathering bundles the lookup tables the cost model reads.
type Gathering struct {
	// Givens are ordered from the most basic resource to the least basic so
	// that chained reductions resolve in a single pass.
	Givens []Given
	Costs  Weights
}

// NewGathering builds tables where every resource not listed in costs
// weighs defaultCost.
func NewGathering(givens []Given, costs map[Resource]int64, defaultCost int64) (*Gathering, error) {
	g := &Gathering{Givens: make([]Given, 0, len(givens))}
	for i := range g.Costs {
		g.Costs[i] = defaultCost
	}
	for r, c := range costs {
		if !r.Valid() {
			return nil, fmt.Errorf("%w: index %d", ErrUnknownResource, int(r))
		}
		if c < 0 {
			return nil, fmt.Errorf("negative gathering cost for %s: %d", r, c)
		}
		g.Costs[r] = c
	}
	for _, given := range givens {
		if !given.Source.Valid() || !given.Derived.Valid() {
			return nil, fmt.Errorf("%w: given %d -> %d", ErrUnknownResource, int(given.Source), int(given.Derived))
		}
		g.Givens = append(g.Givens, given)
	}
	return g, nil
}

// Cost returns the weight of one unit of r.
func (g *Gathering) Cost(r Resource) int64 {
	return g.Costs[r]
}
