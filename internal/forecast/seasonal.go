package forecast

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// SeasonalProfile maps an item category to twelve monthly demand
// multipliers, January first. Categories are matched case-insensitively.
type SeasonalProfile map[string][12]float64

var flatYear = [12]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

// DefaultSeasonalProfile is the built-in curve set: produce peaks mid-year,
// staples stay flat.
func DefaultSeasonalProfile() SeasonalProfile {
	return SeasonalProfile{
		"vegetables": {0.9, 0.9, 1.0, 1.1, 1.2, 1.3, 1.3, 1.2, 1.1, 1.0, 0.9, 0.9},
		"fruit":      {0.8, 0.8, 0.9, 1.0, 1.2, 1.4, 1.4, 1.3, 1.1, 1.0, 0.9, 0.8},
		"protein":    flatYear,
		"grain":      flatYear,
		"dairy":      flatYear,
	}
}

// Multiplier returns the seasonal factor for a category in a month. Unknown
// categories are flat at 1.0.
func (p SeasonalProfile) Multiplier(category string, month time.Month) float64 {
	if month < time.January || month > time.December {
		return 1
	}
	curve, ok := p[normalizeCategory(category)]
	if !ok {
		return 1
	}
	return curve[month-1]
}

// Categories returns the profile's categories in lexical order.
func (p SeasonalProfile) Categories() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a copy of p with the curves of other layered on top.
func (p SeasonalProfile) Merge(other SeasonalProfile) SeasonalProfile {
	merged := make(SeasonalProfile, len(p)+len(other))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range other {
		merged[normalizeCategory(k)] = v
	}
	return merged
}

type seasonalFile struct {
	Categories map[string][]float64 `toml:"categories"`
}

// LoadSeasonalProfile decodes a TOML profile of the form
//
//	[categories]
//	vegetables = [0.9, 0.9, 1.0, ...]
//
// Every curve must have twelve positive values.
func LoadSeasonalProfile(r io.Reader) (SeasonalProfile, error) {
	var file seasonalFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode seasonal profile: %w", err)
	}

	profile := make(SeasonalProfile, len(file.Categories))
	for name, values := range file.Categories {
		category := normalizeCategory(name)
		if category == "" {
			return nil, fmt.Errorf("seasonal profile: empty category name")
		}
		if len(values) != 12 {
			return nil, fmt.Errorf("seasonal profile: category %q has %d values, want 12", name, len(values))
		}
		var curve [12]float64
		for i, v := range values {
			if v <= 0 {
				return nil, fmt.Errorf("seasonal profile: category %q month %d must be positive, got %v", name, i+1, v)
			}
			curve[i] = v
		}
		profile[category] = curve
	}

	return profile, nil
}

// LoadSeasonalProfileBytes is LoadSeasonalProfile over an in-memory document.
func LoadSeasonalProfileBytes(data []byte) (SeasonalProfile, error) {
	return LoadSeasonalProfile(bytes.NewReader(data))
}

// ReadSeasonalProfileFile loads a TOML profile from disk.
func ReadSeasonalProfileFile(path string) (SeasonalProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seasonal profile %s: %w", path, err)
	}
	defer f.Close()

	return LoadSeasonalProfile(f)
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
