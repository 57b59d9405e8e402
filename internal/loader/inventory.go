package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"

	"github.com/napolitain/isle-solver/internal/models"
)

// workshopsKey is the stock file entry that declares the workshop count.
const workshopsKey = "Workshops"

// Warning is a stock file line that was read but not used.
type Warning struct {
	Line       int
	Name       string
	Suggestion string
}

func (w Warning) String() string {
	if w.Suggestion != "" {
		return fmt.Sprintf("line %d: unknown resource %q (did you mean %s?)", w.Line, w.Name, w.Suggestion)
	}
	return fmt.Sprintf("line %d: unknown resource %q", w.Line, w.Name)
}

// LoadInventory reads an Isleventory stock file. Unknown resource names are
// logged and returned as warnings; they never fail the load.
func LoadInventory(path string, logger zerolog.Logger) (*models.Inventory, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stock file: %w", err)
	}
	defer f.Close()

	inv, warnings, err := ParseInventory(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	for _, w := range warnings {
		ev := logger.Warn().Str("file", path).Int("line", w.Line).Str("name", w.Name)
		if w.Suggestion != "" {
			ev = ev.Str("suggestion", w.Suggestion)
		}
		ev.Msg("unknown resource in stock file")
	}
	return inv, warnings, nil
}

// ParseInventory reads "Name: quantity" lines. Lines without exactly one
// colon or with a non-integer quantity are skipped silently. Names match
// resources case-insensitively with or without spaces.
func ParseInventory(r io.Reader) (*models.Inventory, []Warning, error) {
	inv := &models.Inventory{}
	var warnings []Warning

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		parts := strings.Split(scanner.Text(), ":")
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}

		if strings.EqualFold(key, workshopsKey) {
			inv.Workshops = value
			continue
		}
		res, ok := models.ParseResource(key)
		if !ok {
			warnings = append(warnings, Warning{Line: lineNum, Name: key, Suggestion: suggest(key)})
			continue
		}
		inv.Raw[res] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return inv, warnings, nil
}

// suggest returns the closest resource name, or "" if nothing is close.
func suggest(name string) string {
	key := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	best, bestDist := "", len(key)/3+1
	for _, candidate := range models.ResourceNames() {
		if d := levenshtein.ComputeDistance(key, strings.ToLower(candidate)); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// WriteInventory renders inv in the stock file format: the workshop count,
// then every resource with its raw count, with a blank line before the
// produce and leavings groups.
func WriteInventory(w io.Writer, inv *models.Inventory) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s: %d\n\n", workshopsKey, inv.Workshops)
	for _, res := range models.AllResources() {
		if res == models.Popoto || res == models.Fleece {
			bw.WriteByte('\n')
		}
		fmt.Fprintf(bw, "%s: %d\n", res, inv.Raw[res])
	}
	return bw.Flush()
}
