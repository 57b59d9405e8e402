package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/napolitain/isle-solver/data"
	"github.com/napolitain/isle-solver/internal/models"
)

const (
	recipesFile   = "recipes.json"
	gatheringFile = "gathering.json"
)

// ErrMalformedData reports a data file that is not valid JSON or lacks a
// required field.
var ErrMalformedData = errors.New("malformed data file")

// readData returns dataDir/name, or the embedded copy when dataDir is empty.
func readData(dataDir, name string, embedded []byte) ([]byte, error) {
	if dataDir == "" {
		return embedded, nil
	}
	raw, err := os.ReadFile(filepath.Join(dataDir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return raw, nil
}

// LoadCatalog loads the recipe catalog from dataDir. An empty dataDir uses
// the catalog built into the binary.
func LoadCatalog(dataDir string) (*models.Catalog, error) {
	raw, err := readData(dataDir, recipesFile, data.Recipes)
	if err != nil {
		return nil, err
	}
	catalog, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", recipesFile, err)
	}
	return catalog, nil
}

// ParseCatalog decodes a recipes.json document.
func ParseCatalog(raw []byte) (*models.Catalog, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedData)
	}
	list := gjson.GetBytes(raw, "recipes")
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: missing recipes array", ErrMalformedData)
	}

	var (
		recipes []*models.Recipe
		err     error
	)
	list.ForEach(func(_, item gjson.Result) bool {
		var r *models.Recipe
		r, err = parseRecipe(item)
		if err != nil {
			return false
		}
		recipes = append(recipes, r)
		return true
	})
	if err != nil {
		return nil, err
	}
	return models.NewCatalog(recipes)
}

func parseRecipe(item gjson.Result) (*models.Recipe, error) {
	name := item.Get("name").String()
	hours := item.Get("hours")
	if hours.Type != gjson.Number {
		return nil, fmt.Errorf("%w: recipe %q has no hours", ErrMalformedData, name)
	}
	r := &models.Recipe{Name: name, Hours: int(hours.Int())}

	var err error
	item.Get("categories").ForEach(func(_, v gjson.Result) bool {
		c, ok := models.ParseCategory(v.String())
		if !ok {
			err = fmt.Errorf("%w: %q in recipe %q", models.ErrUnknownCategory, v.String(), name)
			return false
		}
		r.Categories |= models.NewCategorySet(c)
		return true
	})
	if err != nil {
		return nil, err
	}

	item.Get("materials").ForEach(func(k, v gjson.Result) bool {
		res, ok := models.ParseResource(k.String())
		if !ok {
			err = fmt.Errorf("%w: %q in recipe %q", models.ErrUnknownResource, k.String(), name)
			return false
		}
		if v.Type != gjson.Number || v.Int() < 0 {
			err = fmt.Errorf("%w: bad quantity %s for %s in recipe %q", ErrMalformedData, v.Raw, k.String(), name)
			return false
		}
		r.Materials[res] += int(v.Int())
		return true
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// LoadGathering loads the given-resource and gathering-cost tables from
// dataDir. An empty dataDir uses the built-in tables.
func LoadGathering(dataDir string) (*models.Gathering, error) {
	raw, err := readData(dataDir, gatheringFile, data.Gathering)
	if err != nil {
		return nil, err
	}
	g, err := ParseGathering(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", gatheringFile, err)
	}
	return g, nil
}

// ParseGathering decodes a gathering.json document. Givens keep their file
// order, which is the order they are applied in.
func ParseGathering(raw []byte) (*models.Gathering, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedData)
	}
	doc := gjson.ParseBytes(raw)

	dc := doc.Get("default_cost")
	if dc.Type != gjson.Number {
		return nil, fmt.Errorf("%w: missing default_cost", ErrMalformedData)
	}

	var (
		givens []models.Given
		err    error
	)
	doc.Get("givens").ForEach(func(_, v gjson.Result) bool {
		src, ok := models.ParseResource(v.Get("source").String())
		if !ok {
			err = fmt.Errorf("%w: given source %q", models.ErrUnknownResource, v.Get("source").String())
			return false
		}
		dst, ok := models.ParseResource(v.Get("derived").String())
		if !ok {
			err = fmt.Errorf("%w: given derived %q", models.ErrUnknownResource, v.Get("derived").String())
			return false
		}
		givens = append(givens, models.Given{Source: src, Derived: dst})
		return true
	})
	if err != nil {
		return nil, err
	}

	costs := make(map[models.Resource]int64)
	doc.Get("costs").ForEach(func(k, v gjson.Result) bool {
		res, ok := models.ParseResource(k.String())
		if !ok {
			err = fmt.Errorf("%w: cost for %q", models.ErrUnknownResource, k.String())
			return false
		}
		if v.Type != gjson.Number {
			err = fmt.Errorf("%w: cost for %s is %s", ErrMalformedData, k.String(), v.Raw)
			return false
		}
		costs[res] = v.Int()
		return true
	})
	if err != nil {
		return nil, err
	}

	return models.NewGathering(givens, costs, dc.Int())
}
