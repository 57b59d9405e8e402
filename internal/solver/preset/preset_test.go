package preset

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/isle-solver/internal/loader"
	"github.com/napolitain/isle-solver/internal/models"
)

func loadShipped(t testing.TB) (*models.Catalog, *models.Gathering) {
	t.Helper()
	catalog, err := loader.LoadCatalog("")
	require.NoError(t, err)
	gathering, err := loader.LoadGathering("")
	require.NoError(t, err)
	return catalog, gathering
}

func newRecipe(name string, hours int, cats []models.Category, mats map[models.Resource]int) *models.Recipe {
	r := &models.Recipe{Name: name, Hours: hours, Categories: models.NewCategorySet(cats...)}
	for res, q := range mats {
		r.Materials[res] = q
	}
	return r
}

func flatGathering(t *testing.T) *models.Gathering {
	t.Helper()
	g, err := models.NewGathering(nil, nil, 1)
	require.NoError(t, err)
	return g
}

func TestFirstPrimes(t *testing.T) {
	primes := firstPrimes(25)
	require.Len(t, primes, 25)
	assert.Equal(t, []int64{2, 3, 5, 7, 11}, primes[:5])
	assert.Equal(t, int64(73), primes[hashOffset])
	assert.Equal(t, int64(97), primes[24])
	assert.Nil(t, firstPrimes(0))

	// enough for every resource
	assert.Len(t, firstPrimes(models.ResourceCount+hashOffset), models.ResourceCount+hashOffset)
}

func TestStructuralHash(t *testing.T) {
	primes := firstPrimes(models.ResourceCount + hashOffset)

	var q models.Quantities
	q[0] = 1
	assert.Equal(t, int64(73), structuralHash(&q, primes))
	q[1] = 2
	assert.Equal(t, int64(73+2*79), structuralHash(&q, primes))

	var zero models.Quantities
	assert.Equal(t, int64(0), structuralHash(&zero, primes))
}

func TestLikelyCost(t *testing.T) {
	tests := []struct {
		name         string
		usage, stock int
		weight, want int64
	}{
		{"shortfall at full weight", 3, 1, 10, 20},
		{"second preset at half", 2, 3, 8, 4},
		{"third preset at quarter", 2, 5, 8, 2},
		{"fourth preset at eighth", 2, 7, 16, 2},
		{"never short", 1, 10, 100, 0},
		{"unused", 0, 0, 100, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var usage, stocks models.Quantities
			var weights models.Weights
			usage[models.Clam] = tc.usage
			stocks[models.Clam] = tc.stock
			weights[models.Clam] = tc.weight
			assert.Equal(t, tc.want, likelyCost(&usage, &stocks, &weights))
		})
	}
}

func TestMinRemaining(t *testing.T) {
	var usage, stocks models.Quantities
	assert.Equal(t, int64(math.MaxInt64), minRemaining(&usage, &stocks))

	usage[models.Sand] = 2
	usage[models.Vine] = 5
	stocks[models.Sand] = 10
	stocks[models.Vine] = 3
	stocks[models.Milk] = -100 // unused resources are ignored
	assert.Equal(t, int64(-2), minRemaining(&usage, &stocks))
}

func TestCompareOrdersByCostThenRemaining(t *testing.T) {
	a := &Preset{LikelyCost: 10, MinRemaining: 1}
	b := &Preset{LikelyCost: 10, MinRemaining: 5}
	c := &Preset{LikelyCost: 3, MinRemaining: -4}

	list := []*Preset{a, b, c}
	slices.SortStableFunc(list, Compare)
	assert.Equal(t, []*Preset{c, b, a}, list)
	assert.Equal(t, 0, Compare(a, a))
}

func TestEnumerateDeduplicatesPermutations(t *testing.T) {
	x := []models.Category{models.Woodworks}
	catalog, err := models.NewCatalog([]*models.Recipe{
		newRecipe("Opener", 4, x, map[models.Resource]int{models.Log: 1}),
		newRecipe("Closer", 4, x, map[models.Resource]int{models.Branch: 1}),
		newRecipe("Long1", 8, x, map[models.Resource]int{models.Vine: 1}),
		newRecipe("Long2", 8, x, map[models.Resource]int{models.Sap: 1}),
	})
	require.NoError(t, err)

	e := NewEnumerator(catalog, flatGathering(t))
	presets, err := e.Enumerate(context.Background(), models.Quantities{})
	require.NoError(t, err)

	// four orderings, one usage vector
	require.Len(t, presets, 1)
	assert.Equal(t, 3, e.Stats().Duplicates)
	assert.Equal(t, 1, e.Stats().Presets)

	p := presets[0]
	assert.Equal(t, models.HoursPerDay, p.Hours())
	assert.Equal(t, 4, p.Set.Len())
	assert.Equal(t, 4, p.Resources.Total())
	assert.Equal(t, "Opener", p.Recipes[0].Name)
	assert.Equal(t, []string{"Opener", "Long1", "Long2", "Closer"}, p.Names())
	assert.Equal(t, "Opener (4)\nLong1 (8)\nLong2 (8)\nCloser (4)\n", p.String())
}

func TestEnumerateRequiresSharedCategory(t *testing.T) {
	catalog, err := models.NewCatalog([]*models.Recipe{
		newRecipe("Opener", 4, []models.Category{models.Arms}, nil),
		newRecipe("Other", 4, []models.Category{models.Arms}, nil),
		newRecipe("Long1", 8, []models.Category{models.Textiles}, nil),
		newRecipe("Long2", 8, []models.Category{models.Textiles}, nil),
	})
	require.NoError(t, err)

	presets, err := NewEnumerator(catalog, flatGathering(t)).Enumerate(context.Background(), models.Quantities{})
	require.NoError(t, err)
	assert.Empty(t, presets)
}

func TestEnumerateShortRecipesOnlyAtEnds(t *testing.T) {
	// six 4-hour recipes cannot fill a day: the middle ones would be short
	var recipes []*models.Recipe
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		recipes = append(recipes, newRecipe(name, 4, []models.Category{models.Sundries}, nil))
	}
	catalog, err := models.NewCatalog(recipes)
	require.NoError(t, err)

	presets, err := NewEnumerator(catalog, flatGathering(t)).Enumerate(context.Background(), models.Quantities{})
	require.NoError(t, err)
	assert.Empty(t, presets)
}

func TestEnumerateWithoutCatalog(t *testing.T) {
	_, err := NewEnumerator(nil, nil).Enumerate(context.Background(), models.Quantities{})
	assert.ErrorIs(t, err, ErrNoOpeningRecipes)
}

func TestEnumerateCancelled(t *testing.T) {
	catalog, gathering := loadShipped(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEnumerator(catalog, gathering).Enumerate(ctx, models.Quantities{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnumerateShippedCatalog(t *testing.T) {
	catalog, gathering := loadShipped(t)

	var stocks models.Quantities
	stocks[models.PalmLeaf] = 20
	stocks[models.Branch] = 20
	stocks[models.Log] = 6

	e := NewEnumerator(catalog, gathering)
	presets, err := e.Enumerate(context.Background(), stocks)
	require.NoError(t, err)
	require.NotEmpty(t, presets)

	stats := e.Stats()
	assert.Equal(t, len(presets), stats.Presets)
	assert.Positive(t, stats.Duplicates)
	assert.Positive(t, stats.Collisions, "a prime-weighted sum is not injective, so distinct usage vectors can share a hash")

	assert.True(t, slices.IsSortedFunc(presets, Compare), "presets must be ranked")

	seen := make(map[models.Quantities]bool, len(presets))
	for _, p := range presets {
		require.NoError(t, validate(p, catalog.MinHours))
		assert.False(t, seen[p.Resources], "duplicate usage vector %v", p.Names())
		seen[p.Resources] = true

		var sum models.Quantities
		for _, r := range p.Recipes {
			sum.Add(&r.Materials)
		}
		assert.Equal(t, sum, p.Resources)
		assert.Equal(t, likelyCost(&p.Resources, &stocks, &gathering.Costs), p.LikelyCost)
	}
}

func TestEnumerateDeterministic(t *testing.T) {
	catalog, gathering := loadShipped(t)
	first, err := NewEnumerator(catalog, gathering).Enumerate(context.Background(), models.Quantities{})
	require.NoError(t, err)
	second, err := NewEnumerator(catalog, gathering).Enumerate(context.Background(), models.Quantities{})
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Names(), second[i].Names())
	}
}

func TestEnumerateStrictHash(t *testing.T) {
	catalog, gathering := loadShipped(t)

	_, err := NewEnumerator(catalog, gathering, WithStrictHash(true)).Enumerate(context.Background(), models.Quantities{})
	assert.True(t, errors.Is(err, ErrHashCollision), "got %v", err)
}

func TestValidate(t *testing.T) {
	cat := []models.Category{models.Arms}
	short := newRecipe("Short", 4, cat, nil)
	long := newRecipe("Long", 8, cat, nil)
	odd := newRecipe("Odd", 8, []models.Category{models.Attire}, nil)
	closer := newRecipe("Closer", 4, cat, nil)
	short.Index, long.Index, odd.Index, closer.Index = 0, 1, 2, 3

	build := func(rs ...*models.Recipe) *Preset {
		p := &Preset{Recipes: rs}
		for _, r := range rs {
			p.Set.Add(r.Index)
		}
		return p
	}

	assert.ErrorIs(t, validate(build(short, long), 4), ErrInvariant, "12 hours")
	assert.ErrorIs(t, validate(build(long, long, long), 4), ErrInvariant, "repeated, no opener")
	assert.ErrorIs(t, validate(build(short, long, odd, closer), 4), ErrInvariant, "category break")
}

func BenchmarkEnumerate(b *testing.B) {
	catalog, gathering := loadShipped(b)
	e := NewEnumerator(catalog, gathering)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Enumerate(ctx, models.Quantities{}); err != nil {
			b.Fatal(err)
		}
	}
}
