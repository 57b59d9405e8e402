package models

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// HoursPerDay is the length of one workshop cycle.
const HoursPerDay = 24

// MaxRecipes bounds the catalog so recipe identities fit in a RecipeSet.
const MaxRecipes = 256

var (
	ErrEmptyCatalog    = errors.New("catalog has no recipes")
	ErrDuplicateRecipe = errors.New("duplicate recipe name")
	ErrInvalidRecipe   = errors.New("invalid recipe")
	ErrCatalogTooLarge = errors.New("catalog exceeds recipe limit")
	ErrUnknownResource = errors.New("unknown resource")
	ErrUnknownCategory = errors.New("unknown category")
)

// Quantities is a per-resource integer vector indexed by Resource.
// Stocks, recipe materials and preset usage all share this shape.
type Quantities [ResourceCount]int

// Add accumulates o into q.
func (q *Quantities) Add(o *Quantities) {
	for i := range q {
		q[i] += o[i]
	}
}

// Sum returns q + o without modifying either.
func (q Quantities) Sum(o Quantities) Quantities {
	q.Add(&o)
	return q
}

// Total adds up every entry.
func (q *Quantities) Total() int {
	n := 0
	for _, v := range q {
		n += v
	}
	return n
}

// IsZero reports whether every entry is zero.
func (q *Quantities) IsZero() bool {
	for _, v := range q {
		if v != 0 {
			return false
		}
	}
	return true
}

// Used lists the resources with a non-zero entry.
func (q *Quantities) Used() []Resource {
	var out []Resource
	for i, v := range q {
		if v != 0 {
			out = append(out, Resource(i))
		}
	}
	return out
}

// String renders the non-zero entries as "Name=qty" pairs.
func (q Quantities) String() string {
	var parts []string
	for i, v := range q {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", Resource(i), v))
		}
	}
	return strings.Join(parts, " ")
}

// RecipeSet is a bitset of catalog indices.
type RecipeSet [MaxRecipes / 64]uint64

// Add inserts a catalog index.
func (s *RecipeSet) Add(idx int) {
	s[idx>>6] |= 1 << uint(idx&63)
}

// Remove deletes a catalog index.
func (s *RecipeSet) Remove(idx int) {
	s[idx>>6] &^= 1 << uint(idx&63)
}

// Has reports whether idx is present.
func (s *RecipeSet) Has(idx int) bool {
	return s[idx>>6]&(1<<uint(idx&63)) != 0
}

// Intersects reports whether the sets share any index.
func (s *RecipeSet) Intersects(o *RecipeSet) bool {
	return s[0]&o[0] != 0 || s[1]&o[1] != 0 || s[2]&o[2] != 0 || s[3]&o[3] != 0
}

// Union returns s | o.
func (s RecipeSet) Union(o RecipeSet) RecipeSet {
	for i := range s {
		s[i] |= o[i]
	}
	return s
}

// Len returns the number of indices in the set.
func (s *RecipeSet) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// Recipe is a product that can be crafted in a workshop.
// Identity is by Name.
type Recipe struct {
	Name       string
	Hours      int
	Categories CategorySet
	Materials  Quantities

	// Index is the recipe's position in its Catalog.
	Index int
}

// SharesCategory reports whether crafting o right after r earns the bonus.
func (r *Recipe) SharesCategory(o *Recipe) bool {
	return r.Categories.Intersects(o.Categories)
}

func (r *Recipe) String() string {
	return fmt.Sprintf("%s (%d)", r.Name, r.Hours)
}

// Catalog is the immutable list of recipes known to the solver.
type Catalog struct {
	Recipes  []*Recipe
	MinHours int

	byName map[string]*Recipe
}

// NewCatalog validates the recipes and assigns their catalog indices. The
// catalog keeps its own copies, so the caller's recipes are left untouched.
func NewCatalog(recipes []*Recipe) (*Catalog, error) {
	if len(recipes) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(recipes) > MaxRecipes {
		return nil, fmt.Errorf("%w: %d recipes, limit %d", ErrCatalogTooLarge, len(recipes), MaxRecipes)
	}

	c := &Catalog{
		Recipes:  make([]*Recipe, len(recipes)),
		MinHours: HoursPerDay + 1,
		byName:   make(map[string]*Recipe, len(recipes)),
	}
	for i, r := range recipes {
		if r == nil || r.Name == "" {
			return nil, fmt.Errorf("%w: recipe #%d has no name", ErrInvalidRecipe, i)
		}
		if r.Hours <= 0 || r.Hours > HoursPerDay {
			return nil, fmt.Errorf("%w: %s takes %d hours", ErrInvalidRecipe, r.Name, r.Hours)
		}
		if _, dup := c.byName[r.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRecipe, r.Name)
		}
		own := *r
		own.Index = i
		c.Recipes[i] = &own
		c.byName[own.Name] = &own
		if own.Hours < c.MinHours {
			c.MinHours = own.Hours
		}
	}
	return c, nil
}

// Recipe looks a recipe up by name.
func (c *Catalog) Recipe(name string) (*Recipe, bool) {
	r, ok := c.byName[name]
	return r, ok
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	return len(c.Recipes)
}

// Openers returns the recipes of MinHours duration, in catalog order.
func (c *Catalog) Openers() []*Recipe {
	var out []*Recipe
	for _, r := range c.Recipes {
		if r.Hours == c.MinHours {
			out = append(out, r)
		}
	}
	return out
}
