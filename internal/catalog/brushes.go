package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// BrushCatalog holds the compiled brush catalog: model-level entries from
// the known_brushes section and brand-level fallback entries from
// other_brushes. Immutable after Load.
type BrushCatalog struct {
	known []*Entry
	brand []*Entry

	knownPairs []matcherPair
	brandPairs []matcherPair

	byModel map[string]*Entry // brand + "\x00" + model
	byBrand map[string]*Entry // brand fallback entries
}

// matcherPair is one (entry, pattern) combination in global match order.
type matcherPair struct {
	entry   *Entry
	pattern *Pattern
}

// brand-level keys inside a known_brushes brand mapping that are defaults
// rather than model names.
var brandLevelKeys = map[string]bool{
	"handle_matching": true,
	"fiber":           true,
	"knot_size_mm":    true,
}

type rawModel struct {
	Fiber          string         `yaml:"fiber"`
	KnotSizeMM     *float64       `yaml:"knot_size_mm"`
	HandleMatching *bool          `yaml:"handle_matching"`
	Patterns       []string       `yaml:"patterns"`
	Extra          map[string]any `yaml:"-"`
}

// UnmarshalYAML decodes the known keys and keeps everything else in Extra.
func (m *rawModel) UnmarshalYAML(node *yaml.Node) error {
	var fields map[string]yaml.Node
	if err := node.Decode(&fields); err != nil {
		return err
	}
	for key, value := range fields {
		switch key {
		case "fiber":
			if err := value.Decode(&m.Fiber); err != nil {
				return err
			}
		case "knot_size_mm":
			if err := value.Decode(&m.KnotSizeMM); err != nil {
				return err
			}
		case "handle_matching":
			if err := value.Decode(&m.HandleMatching); err != nil {
				return err
			}
		case "patterns":
			if err := value.Decode(&m.Patterns); err != nil {
				return err
			}
		default:
			var v any
			if err := value.Decode(&v); err != nil {
				return err
			}
			if m.Extra == nil {
				m.Extra = make(map[string]any)
			}
			m.Extra[key] = v
		}
	}
	return nil
}

type rawBrushFile struct {
	KnownBrushes map[string]map[string]yaml.Node `yaml:"known_brushes"`
	OtherBrushes map[string]rawModel             `yaml:"other_brushes"`
}

// LoadBrushes reads and compiles the brush catalog. Any invalid pattern or
// malformed entry is a fatal configuration error naming the offending
// brand, model, and pattern.
func LoadBrushes(path string) (*BrushCatalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading brush catalog: %w", err)
	}

	var raw rawBrushFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing brush catalog: %w", err)
	}

	c := &BrushCatalog{
		byModel: make(map[string]*Entry),
		byBrand: make(map[string]*Entry),
	}

	for brand, models := range raw.KnownBrushes {
		defaults, err := brandDefaults(brand, models)
		if err != nil {
			return nil, err
		}
		for model, node := range models {
			if brandLevelKeys[model] {
				continue
			}
			var rm rawModel
			if err := node.Decode(&rm); err != nil {
				return nil, fmt.Errorf("brush catalog: brand %q model %q: %w", brand, model, err)
			}
			entry, err := buildEntry(brand, model, rm, defaults)
			if err != nil {
				return nil, err
			}
			c.known = append(c.known, entry)
			c.byModel[modelKey(brand, model)] = entry
		}
	}

	for brand, rm := range raw.OtherBrushes {
		entry, err := buildEntry(brand, "", rm, rawModel{})
		if err != nil {
			return nil, err
		}
		entry.BrandOnly = true
		c.brand = append(c.brand, entry)
		c.byBrand[brand] = entry
	}

	c.knownPairs = flattenPairs(c.known)
	c.brandPairs = flattenPairs(c.brand)
	return c, nil
}

// brandDefaults extracts brand-level default fields from a known_brushes
// brand mapping. Model-level fields override these.
func brandDefaults(brand string, models map[string]yaml.Node) (rawModel, error) {
	var d rawModel
	for key, node := range models {
		if !brandLevelKeys[key] {
			continue
		}
		var err error
		switch key {
		case "handle_matching":
			err = node.Decode(&d.HandleMatching)
		case "fiber":
			err = node.Decode(&d.Fiber)
		case "knot_size_mm":
			err = node.Decode(&d.KnotSizeMM)
		}
		if err != nil {
			return d, fmt.Errorf("brush catalog: brand %q: invalid %s: %w", brand, key, err)
		}
	}
	return d, nil
}

func buildEntry(brand, model string, rm, defaults rawModel) (*Entry, error) {
	if len(rm.Patterns) == 0 {
		return nil, fmt.Errorf("brush catalog: brand %q model %q: no patterns", brand, model)
	}

	fiberName := rm.Fiber
	if fiberName == "" {
		fiberName = defaults.Fiber
	}
	fiber, err := ParseFiber(fiberName)
	if err != nil {
		return nil, fmt.Errorf("brush catalog: brand %q model %q: %w", brand, model, err)
	}

	knotSize := rm.KnotSizeMM
	if knotSize == nil {
		knotSize = defaults.KnotSizeMM
	}

	handleMatching := false
	switch {
	case rm.HandleMatching != nil:
		handleMatching = *rm.HandleMatching
	case defaults.HandleMatching != nil:
		handleMatching = *defaults.HandleMatching
	}

	entry := &Entry{
		Brand:          brand,
		Model:          model,
		Fiber:          fiber,
		KnotSizeMM:     knotSize,
		HandleMatching: handleMatching,
		Extra:          rm.Extra,
	}

	// Longest raw pattern first so specific patterns out-rank general ones.
	raws := append([]string(nil), rm.Patterns...)
	sort.SliceStable(raws, func(i, j int) bool { return len(raws[i]) > len(raws[j]) })
	for _, r := range raws {
		p, err := compilePattern(r)
		if err != nil {
			return nil, fmt.Errorf("brush catalog: brand %q model %q: invalid pattern %q: %w", brand, model, r, err)
		}
		entry.Patterns = append(entry.Patterns, p)
	}
	return entry, nil
}

// flattenPairs builds the global match order across entries: longest
// pattern first, ties broken by brand then model for determinism.
func flattenPairs(entries []*Entry) []matcherPair {
	var pairs []matcherPair
	for _, e := range entries {
		for i := range e.Patterns {
			pairs = append(pairs, matcherPair{entry: e, pattern: &e.Patterns[i]})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		pi, pj := pairs[i], pairs[j]
		if len(pi.pattern.Raw) != len(pj.pattern.Raw) {
			return len(pi.pattern.Raw) > len(pj.pattern.Raw)
		}
		if pi.entry.Brand != pj.entry.Brand {
			return pi.entry.Brand < pj.entry.Brand
		}
		return pi.entry.Model < pj.entry.Model
	})
	return pairs
}

// MatchKnown returns the first model-level entry whose pattern matches text.
func (c *BrushCatalog) MatchKnown(text string) (*Entry, *Pattern) {
	return matchPairs(c.knownPairs, text)
}

// MatchBrand returns the first brand-fallback entry whose pattern matches text.
func (c *BrushCatalog) MatchBrand(text string) (*Entry, *Pattern) {
	return c.MatchBrandWhere(text, nil)
}

// MatchBrandWhere returns the first brand-fallback entry accepted by keep
// whose pattern matches text. A nil keep accepts every entry.
func (c *BrushCatalog) MatchBrandWhere(text string, keep func(*Entry) bool) (*Entry, *Pattern) {
	for _, p := range c.brandPairs {
		if keep != nil && !keep(p.entry) {
			continue
		}
		if p.pattern.Re.MatchString(text) {
			return p.entry, p.pattern
		}
	}
	return nil, nil
}

func matchPairs(pairs []matcherPair, text string) (*Entry, *Pattern) {
	for _, p := range pairs {
		if p.pattern.Re.MatchString(text) {
			return p.entry, p.pattern
		}
	}
	return nil, nil
}

// Lookup returns the model-level entry for a brand/model, or nil.
func (c *BrushCatalog) Lookup(brand, model string) *Entry {
	return c.byModel[modelKey(brand, model)]
}

// LookupBrand returns the brand-fallback entry for a brand, or nil.
func (c *BrushCatalog) LookupBrand(brand string) *Entry {
	return c.byBrand[brand]
}

// Brands returns every brand name in the catalog, model-level and fallback.
func (c *BrushCatalog) Brands() []string {
	seen := make(map[string]bool)
	var brands []string
	for _, e := range c.known {
		if !seen[e.Brand] {
			seen[e.Brand] = true
			brands = append(brands, e.Brand)
		}
	}
	for _, e := range c.brand {
		if !seen[e.Brand] {
			seen[e.Brand] = true
			brands = append(brands, e.Brand)
		}
	}
	sort.Strings(brands)
	return brands
}

// Len returns the number of compiled entries.
func (c *BrushCatalog) Len() int {
	return len(c.known) + len(c.brand)
}

func modelKey(brand, model string) string {
	return brand + "\x00" + model
}
