package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// HandleCatalog holds the compiled handle-maker catalog. Sections earlier in
// the file carry higher priority; within a priority tier longer patterns are
// tried first. Used only for split scoring and handle enrichment, never for
// brand identification.
type HandleCatalog struct {
	entries []*HandleEntry
	pairs   []handlePair
	byMaker map[string]*HandleEntry
}

type handlePair struct {
	entry   *HandleEntry
	pattern *Pattern
}

// LoadHandles reads and compiles the handle catalog. Each top-level mapping
// key is a section; its position in the file determines priority (first
// section highest).
func LoadHandles(path string) (*HandleCatalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading handle catalog: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing handle catalog: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("handle catalog: empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("handle catalog: top level must be a mapping of sections")
	}

	c := &HandleCatalog{byMaker: make(map[string]*HandleEntry)}

	sectionCount := len(root.Content) / 2
	for i := 0; i < len(root.Content); i += 2 {
		section := root.Content[i].Value
		priority := sectionCount - i/2

		var makers map[string]struct {
			Patterns []string `yaml:"patterns"`
		}
		if err := root.Content[i+1].Decode(&makers); err != nil {
			return nil, fmt.Errorf("handle catalog: section %q: %w", section, err)
		}

		for maker, m := range makers {
			if len(m.Patterns) == 0 {
				return nil, fmt.Errorf("handle catalog: section %q maker %q: no patterns", section, maker)
			}
			entry := &HandleEntry{
				Maker:    maker,
				Section:  section,
				Priority: priority,
			}
			raws := append([]string(nil), m.Patterns...)
			sort.SliceStable(raws, func(a, b int) bool { return len(raws[a]) > len(raws[b]) })
			for _, r := range raws {
				p, err := compilePattern(r)
				if err != nil {
					return nil, fmt.Errorf("handle catalog: section %q maker %q: invalid pattern %q: %w", section, maker, r, err)
				}
				entry.Patterns = append(entry.Patterns, p)
			}
			c.entries = append(c.entries, entry)
			c.byMaker[maker] = entry
		}
	}

	for _, e := range c.entries {
		for i := range e.Patterns {
			c.pairs = append(c.pairs, handlePair{entry: e, pattern: &e.Patterns[i]})
		}
	}
	sort.SliceStable(c.pairs, func(i, j int) bool {
		pi, pj := c.pairs[i], c.pairs[j]
		if pi.entry.Priority != pj.entry.Priority {
			return pi.entry.Priority > pj.entry.Priority
		}
		if len(pi.pattern.Raw) != len(pj.pattern.Raw) {
			return len(pi.pattern.Raw) > len(pj.pattern.Raw)
		}
		return pi.entry.Maker < pj.entry.Maker
	})

	return c, nil
}

// Match returns the highest-priority handle maker whose pattern matches
// text, or nil when no maker matches.
func (c *HandleCatalog) Match(text string) *HandleMatch {
	for _, p := range c.pairs {
		if p.pattern.Re.MatchString(text) {
			return &HandleMatch{
				Maker:    p.entry.Maker,
				Section:  p.entry.Section,
				Priority: p.entry.Priority,
				Pattern:  p.pattern,
			}
		}
	}
	return nil
}

// LookupMaker returns the entry for a maker name, or nil.
func (c *HandleCatalog) LookupMaker(maker string) *HandleEntry {
	return c.byMaker[maker]
}

// Len returns the number of compiled maker entries.
func (c *HandleCatalog) Len() int {
	return len(c.entries)
}
