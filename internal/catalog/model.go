package catalog

import (
	"fmt"
	"regexp"
)

// Fiber is a brush knot fiber type.
type Fiber string

// Fiber types.
const (
	FiberBadger    Fiber = "Badger"
	FiberBoar      Fiber = "Boar"
	FiberSynthetic Fiber = "Synthetic"
	FiberHorse     Fiber = "Horse"
)

// ParseFiber validates a fiber name from a catalog file. An empty string is
// allowed and means the entry declares no default fiber.
func ParseFiber(s string) (Fiber, error) {
	switch Fiber(s) {
	case "", FiberBadger, FiberBoar, FiberSynthetic, FiberHorse:
		return Fiber(s), nil
	}
	return "", fmt.Errorf("unknown fiber %q", s)
}

// Pattern is a single compiled catalog pattern. Raw keeps the text as it
// appears in the catalog file; Re is the case-insensitive compiled form.
type Pattern struct {
	Raw string
	Re  *regexp.Regexp
}

// Entry is one brand/model combination from the brush catalog. Entries from
// the brand-fallback section have an empty Model and BrandOnly set.
type Entry struct {
	Brand          string
	Model          string
	Fiber          Fiber
	KnotSizeMM     *float64
	HandleMatching bool
	BrandOnly      bool

	// Patterns are sorted by descending raw length so more specific
	// patterns are tried first.
	Patterns []Pattern

	// Extra holds catalog fields this engine does not interpret. They are
	// copied into every match for this entry.
	Extra map[string]any
}

// HandleEntry is one maker from the handle catalog.
type HandleEntry struct {
	Maker    string
	Section  string
	Priority int
	Patterns []Pattern
}

// HandleMatch is the result of a handle catalog lookup.
type HandleMatch struct {
	Maker    string
	Section  string
	Priority int
	Pattern  *Pattern
}

// compilePattern compiles a catalog pattern case-insensitively.
func compilePattern(raw string) (Pattern, error) {
	re, err := regexp.Compile("(?i)" + raw)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Raw: raw, Re: re}, nil
}
