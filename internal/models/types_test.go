package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecipe(name string, hours int, cats ...Category) *Recipe {
	return &Recipe{Name: name, Hours: hours, Categories: NewCategorySet(cats...)}
}

func TestNewCatalog(t *testing.T) {
	c, err := NewCatalog([]*Recipe{
		testRecipe("Potion", 4, Concoctions),
		testRecipe("Firesand", 4, Concoctions, UnburiedTreasures),
		testRecipe("Bouillabaisse", 8, Foodstuffs, MarineMerchandise),
		testRecipe("Sauerkraut", 6, PreservedFood),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, c.MinHours)
	assert.Equal(t, 4, c.Len())
	for i, r := range c.Recipes {
		assert.Equal(t, i, r.Index)
	}

	openers := c.Openers()
	require.Len(t, openers, 2)
	assert.Equal(t, "Potion", openers[0].Name)

	r, ok := c.Recipe("Sauerkraut")
	require.True(t, ok)
	assert.Equal(t, 6, r.Hours)
	_, ok = c.Recipe("Missing")
	assert.False(t, ok)
}

func TestNewCatalogCopiesRecipes(t *testing.T) {
	potion := testRecipe("Potion", 4, Concoctions)
	firesand := testRecipe("Firesand", 4, Concoctions)

	first, err := NewCatalog([]*Recipe{potion, firesand})
	require.NoError(t, err)
	second, err := NewCatalog([]*Recipe{firesand, potion})
	require.NoError(t, err)

	p1, _ := first.Recipe("Potion")
	p2, _ := second.Recipe("Potion")
	assert.Equal(t, 0, p1.Index)
	assert.Equal(t, 1, p2.Index)
	assert.NotSame(t, potion, p1)
	assert.Equal(t, 0, potion.Index)
	assert.Equal(t, 0, firesand.Index)
}

func TestNewCatalogErrors(t *testing.T) {
	tooMany := make([]*Recipe, MaxRecipes+1)
	for i := range tooMany {
		tooMany[i] = testRecipe(fmt.Sprintf("R%d", i), 4)
	}

	tests := []struct {
		name    string
		recipes []*Recipe
		want    error
	}{
		{"empty", nil, ErrEmptyCatalog},
		{"duplicate", []*Recipe{testRecipe("A", 4), testRecipe("A", 6)}, ErrDuplicateRecipe},
		{"zero hours", []*Recipe{testRecipe("A", 0)}, ErrInvalidRecipe},
		{"negative hours", []*Recipe{testRecipe("A", -4)}, ErrInvalidRecipe},
		{"longer than a day", []*Recipe{testRecipe("A", 25)}, ErrInvalidRecipe},
		{"unnamed", []*Recipe{testRecipe("", 4)}, ErrInvalidRecipe},
		{"nil recipe", []*Recipe{nil}, ErrInvalidRecipe},
		{"too large", tooMany, ErrCatalogTooLarge},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(tc.recipes)
			if !errors.Is(err, tc.want) {
				t.Fatalf("NewCatalog() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRecipeSharesCategory(t *testing.T) {
	a := testRecipe("A", 4, Concoctions, UnburiedTreasures)
	b := testRecipe("B", 6, UnburiedTreasures)
	c := testRecipe("C", 8, Textiles)

	assert.True(t, a.SharesCategory(b))
	assert.True(t, b.SharesCategory(a))
	assert.False(t, a.SharesCategory(c))
	assert.Equal(t, "A (4)", a.String())
}

func TestRecipeSet(t *testing.T) {
	var s RecipeSet
	for _, i := range []int{0, 63, 64, 200, 255} {
		s.Add(i)
	}
	assert.Equal(t, 5, s.Len())
	assert.True(t, s.Has(64))
	assert.False(t, s.Has(65))

	s.Remove(64)
	assert.False(t, s.Has(64))
	assert.Equal(t, 4, s.Len())

	var o RecipeSet
	o.Add(1)
	assert.False(t, s.Intersects(&o))
	o.Add(255)
	assert.True(t, s.Intersects(&o))

	u := s.Union(o)
	assert.Equal(t, 5, u.Len())
	assert.True(t, u.Has(1))
}

func TestQuantities(t *testing.T) {
	var a, b Quantities
	a[PalmLeaf] = 2
	b[PalmLeaf] = 1
	b[Islewort] = 3

	sum := a.Sum(b)
	assert.Equal(t, 3, sum[PalmLeaf])
	assert.Equal(t, 2, a[PalmLeaf], "Sum must not modify the receiver")

	a.Add(&b)
	assert.Equal(t, sum, a)
	assert.Equal(t, 6, a.Total())
	assert.Equal(t, []Resource{PalmLeaf, Islewort}, a.Used())
	assert.Equal(t, "PalmLeaf=3 Islewort=3", a.String())

	var zero Quantities
	assert.True(t, zero.IsZero())
	assert.False(t, a.IsZero())
}

func TestParseResource(t *testing.T) {
	for _, name := range []string{"PalmLeaf", "palm_leaf", "Palm Leaf", "PALMLEAF"} {
		r, ok := ParseResource(name)
		require.True(t, ok, name)
		assert.Equal(t, PalmLeaf, r, name)
	}
	_, ok := ParseResource("Unobtainium")
	assert.False(t, ok)

	assert.Equal(t, "sweet_popoto", SweetPopoto.Key())
	assert.Equal(t, "Milk", Milk.String())
	assert.Len(t, AllResources(), ResourceCount)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("marine_merchandise")
	require.True(t, ok)
	assert.Equal(t, MarineMerchandise, c)

	set := NewCategorySet(Arms, Textiles)
	assert.True(t, set.Has(Arms))
	assert.False(t, set.Has(Attire))
	assert.Equal(t, []Category{Arms, Textiles}, set.Categories())
}

func TestNewGathering(t *testing.T) {
	g, err := NewGathering(
		[]Given{{Source: PalmLeaf, Derived: PalmLog}},
		map[Resource]int64{PalmLeaf: 12},
		1_000_000_000,
	)
	require.NoError(t, err)
	assert.Equal(t, int64(12), g.Cost(PalmLeaf))
	assert.Equal(t, int64(1_000_000_000), g.Cost(Milk))
	assert.Equal(t, "PalmLeaf -> PalmLog", g.Givens[0].String())

	_, err = NewGathering(nil, map[Resource]int64{PalmLeaf: -1}, 0)
	assert.Error(t, err)

	_, err = NewGathering([]Given{{Source: Resource(ResourceCount), Derived: PalmLog}}, nil, 0)
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestInventoryStocks(t *testing.T) {
	inv := Inventory{}
	inv.Raw[PalmLeaf] = 14
	inv.Raw[Branch] = 5
	inv.Raw[Stone] = 4

	stocks := inv.Stocks(DefaultStockDivisor)
	assert.Equal(t, 2, stocks[PalmLeaf])
	assert.Equal(t, 1, stocks[Branch])
	assert.Equal(t, 0, stocks[Stone])

	assert.Equal(t, inv.Raw, inv.Stocks(0))
}
