package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/isle-solver/internal/models"
)

func TestLoadCatalogEmbedded(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)

	assert.Equal(t, 81, catalog.Len())
	assert.Equal(t, 4, catalog.MinHours)
	assert.Len(t, catalog.Openers(), 27)

	potion, ok := catalog.Recipe("Isleworks Potion")
	require.True(t, ok)
	assert.Equal(t, 4, potion.Hours)
	assert.True(t, potion.Categories.Has(models.Concoctions))
	assert.Equal(t, 2, potion.Materials[models.PalmLeaf])
	assert.Equal(t, 2, potion.Materials[models.Islewort])
}

func TestLoadCatalogMaterials(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)

	total := 0
	for _, r := range catalog.Recipes {
		assert.False(t, r.Materials.IsZero(), "%s has no materials", r.Name)
		total += r.Materials.Total()
	}
	assert.Equal(t, 477, total)

	tests := []struct {
		recipe string
		want   map[models.Resource]int
	}{
		{"Isleworks Brush", map[models.Resource]int{models.Fur: 1, models.PalmLog: 3}},
		{"Isleworks Isloaf", map[models.Resource]int{models.Wheat: 2, models.Islefish: 1, models.RockSalt: 1}},
		{"Isleworks Hora", map[models.Resource]int{models.Carapace: 2, models.Stone: 4}},
		{"Isleworks Sweet Popoto", map[models.Resource]int{models.Popoto: 2, models.Milk: 1, models.Sap: 3}},
		{"Isleworks Iron Axe", map[models.Resource]int{models.IronOre: 3, models.Log: 3, models.Sand: 2}},
	}
	for _, tc := range tests {
		t.Run(tc.recipe, func(t *testing.T) {
			r, ok := catalog.Recipe(tc.recipe)
			require.True(t, ok)

			var want models.Quantities
			for res, q := range tc.want {
				want[res] = q
			}
			assert.Equal(t, want, r.Materials)
		})
	}
}

func TestLoadCatalogFromDir(t *testing.T) {
	catalog, err := LoadCatalog("../../data")
	require.NoError(t, err)
	assert.Equal(t, 81, catalog.Len())

	_, err = LoadCatalog(t.TempDir())
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"not json", `{"recipes": [`, ErrMalformedData},
		{"no recipes", `{"items": []}`, ErrMalformedData},
		{"empty", `{"recipes": []}`, models.ErrEmptyCatalog},
		{"no hours", `{"recipes": [{"name": "A", "categories": [], "materials": {}}]}`, ErrMalformedData},
		{"bad hours", `{"recipes": [{"name": "A", "hours": 0}]}`, models.ErrInvalidRecipe},
		{"unknown category", `{"recipes": [{"name": "A", "hours": 4, "categories": ["gadgets"]}]}`, models.ErrUnknownCategory},
		{"unknown material", `{"recipes": [{"name": "A", "hours": 4, "materials": {"mithril": 1}}]}`, models.ErrUnknownResource},
		{"negative material", `{"recipes": [{"name": "A", "hours": 4, "materials": {"sand": -1}}]}`, ErrMalformedData},
		{"duplicate", `{"recipes": [{"name": "A", "hours": 4}, {"name": "A", "hours": 6}]}`, models.ErrDuplicateRecipe},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadGatheringEmbedded(t *testing.T) {
	g, err := LoadGathering("")
	require.NoError(t, err)

	assert.Len(t, g.Givens, 31)
	assert.Equal(t, models.Given{Source: models.PalmLeaf, Derived: models.PalmLog}, g.Givens[0])
	assert.Equal(t, models.Given{Source: models.Coconut, Derived: models.PalmLeaf}, g.Givens[1])
	assert.Equal(t, int64(1_000_000_000), g.Cost(models.Milk))
	assert.Less(t, g.Cost(models.PalmLeaf), int64(1_000_000_000))
}

func TestParseGatheringErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"not json", `{`, ErrMalformedData},
		{"no default", `{"givens": [], "costs": {}}`, ErrMalformedData},
		{"unknown source", `{"default_cost": 1, "givens": [{"source": "x", "derived": "sand"}]}`, models.ErrUnknownResource},
		{"unknown derived", `{"default_cost": 1, "givens": [{"source": "sand", "derived": "x"}]}`, models.ErrUnknownResource},
		{"unknown cost", `{"default_cost": 1, "costs": {"x": 1}}`, models.ErrUnknownResource},
		{"string cost", `{"default_cost": 1, "costs": {"sand": "cheap"}}`, ErrMalformedData},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseGathering([]byte(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Isleventory.txt")
	content := "Workshops: 3\n" +
		"\n" +
		"PalmLeaf: 27\n" +
		"palm log : 10\n" +
		"Branch: lots\n" +
		"Stone 12\n" +
		"Time: 12:30\n" +
		"Brnach: 4\n" +
		"Unobtainium: 9\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	inv, warnings, err := LoadInventory(path, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 3, inv.Workshops)
	assert.Equal(t, 27, inv.Raw[models.PalmLeaf])
	assert.Equal(t, 10, inv.Raw[models.PalmLog])
	assert.Equal(t, 0, inv.Raw[models.Branch], "non-integer quantity is skipped")
	assert.Equal(t, 0, inv.Raw[models.Stone], "line without a colon is skipped")

	stocks := inv.Stocks(models.DefaultStockDivisor)
	assert.Equal(t, 5, stocks[models.PalmLeaf])
	assert.Equal(t, 2, stocks[models.PalmLog])

	require.Len(t, warnings, 2)
	assert.Equal(t, Warning{Line: 8, Name: "Brnach", Suggestion: "Branch"}, warnings[0])
	assert.Equal(t, "Unobtainium", warnings[1].Name)
	assert.Empty(t, warnings[1].Suggestion)
	assert.Contains(t, warnings[0].String(), "did you mean Branch?")
}

func TestLoadInventoryMissing(t *testing.T) {
	_, _, err := LoadInventory(filepath.Join(t.TempDir(), "nope.txt"), zerolog.Nop())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteInventoryRoundTrip(t *testing.T) {
	inv := &models.Inventory{Workshops: 4}
	inv.Raw[models.Popoto] = 12
	inv.Raw[models.Milk] = 3

	path := filepath.Join(t.TempDir(), "Isleventory.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteInventory(f, inv))
	require.NoError(t, f.Close())

	got, warnings, err := LoadInventory(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, inv, got)
}
