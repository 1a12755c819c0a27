package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CorrectMatches is the curated override table. Keys are exact lowercase
// normalized strings; lookups bypass every pattern strategy.
type CorrectMatches struct {
	brush map[string]*Entry
	split map[string]*SplitOverride
}

// SplitOverride is a curated pre-split entry: the handle and knot substrings
// a reviewer assigned, each resolved to its canonical record at load time.
type SplitOverride struct {
	HandleText  string
	KnotText    string
	HandleMaker string
	Knot        *Entry
}

type rawCorrectFile struct {
	Brush map[string]struct {
		Brand string `yaml:"brand"`
		Model string `yaml:"model"`
	} `yaml:"brush"`
	SplitBrush map[string]struct {
		Handle struct {
			Maker string `yaml:"maker"`
			Text  string `yaml:"text"`
		} `yaml:"handle"`
		Knot struct {
			Brand string `yaml:"brand"`
			Model string `yaml:"model"`
			Text  string `yaml:"text"`
		} `yaml:"knot"`
	} `yaml:"split_brush"`
}

// LoadCorrectMatches reads the override table and resolves every referenced
// brand/model against the compiled brush catalog. A key that is not
// lowercase, or a reference to an entry the catalog does not declare, is a
// fatal configuration error.
func LoadCorrectMatches(path string, brushes *BrushCatalog, handles *HandleCatalog) (*CorrectMatches, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading correct matches: %w", err)
	}

	var raw rawCorrectFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing correct matches: %w", err)
	}

	c := &CorrectMatches{
		brush: make(map[string]*Entry, len(raw.Brush)),
		split: make(map[string]*SplitOverride, len(raw.SplitBrush)),
	}

	for key, ref := range raw.Brush {
		if key != strings.ToLower(key) {
			return nil, fmt.Errorf("correct matches: brush key %q is not lowercase", key)
		}
		entry := resolveEntry(brushes, ref.Brand, ref.Model)
		if entry == nil {
			return nil, fmt.Errorf("correct matches: brush key %q references unknown entry %q / %q", key, ref.Brand, ref.Model)
		}
		c.brush[key] = entry
	}

	for key, ref := range raw.SplitBrush {
		if key != strings.ToLower(key) {
			return nil, fmt.Errorf("correct matches: split_brush key %q is not lowercase", key)
		}
		if ref.Handle.Maker == "" || ref.Knot.Brand == "" {
			return nil, fmt.Errorf("correct matches: split_brush key %q must name a handle maker and a knot brand", key)
		}
		if handles.LookupMaker(ref.Handle.Maker) == nil {
			return nil, fmt.Errorf("correct matches: split_brush key %q references unknown handle maker %q", key, ref.Handle.Maker)
		}
		knot := resolveEntry(brushes, ref.Knot.Brand, ref.Knot.Model)
		if knot == nil {
			return nil, fmt.Errorf("correct matches: split_brush key %q references unknown entry %q / %q", key, ref.Knot.Brand, ref.Knot.Model)
		}
		c.split[key] = &SplitOverride{
			HandleText:  ref.Handle.Text,
			KnotText:    ref.Knot.Text,
			HandleMaker: ref.Handle.Maker,
			Knot:        knot,
		}
	}

	return c, nil
}

// resolveEntry finds a model-level entry, falling back to the brand table
// when the reference has no model.
func resolveEntry(brushes *BrushCatalog, brand, model string) *Entry {
	if model != "" {
		return brushes.Lookup(brand, model)
	}
	return brushes.LookupBrand(brand)
}

// Brush returns the whole-string override for a lowercase key, or nil.
func (c *CorrectMatches) Brush(key string) *Entry {
	return c.brush[key]
}

// Split returns the curated split override for a lowercase key, or nil.
func (c *CorrectMatches) Split(key string) *SplitOverride {
	return c.split[key]
}

// Len returns the number of override keys across both tables.
func (c *CorrectMatches) Len() int {
	return len(c.brush) + len(c.split)
}
