// Package catalog loads the hand-curated brush, handle, and correct-match
// catalogs and compiles their patterns into case-insensitive matchers.
// Loading happens once; everything here is immutable afterwards and safe to
// share across concurrent matching calls.
package catalog

import "fmt"

// Set bundles the three compiled catalogs a matcher needs.
type Set struct {
	Brushes *BrushCatalog
	Handles *HandleCatalog
	Correct *CorrectMatches
}

// Paths names the catalog files on disk.
type Paths struct {
	Brushes        string
	Handles        string
	CorrectMatches string
}

// LoadSet loads and compiles all catalogs. Any failure is a configuration
// error and must abort construction; nothing here is retryable.
func LoadSet(p Paths) (*Set, error) {
	brushes, err := LoadBrushes(p.Brushes)
	if err != nil {
		return nil, err
	}
	handles, err := LoadHandles(p.Handles)
	if err != nil {
		return nil, err
	}
	correct, err := LoadCorrectMatches(p.CorrectMatches, brushes, handles)
	if err != nil {
		return nil, err
	}
	return &Set{Brushes: brushes, Handles: handles, Correct: correct}, nil
}

// Summary returns a one-line description of catalog sizes, for lint output.
func (s *Set) Summary() string {
	return fmt.Sprintf("%d brush entries, %d handle makers, %d overrides",
		s.Brushes.Len(), s.Handles.Len(), s.Correct.Len())
}
