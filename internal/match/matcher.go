// Package match implements the brush matching and splitting engine: a fixed
// priority-ordered chain of strategies over compiled catalogs. Matching is a
// pure synchronous function with no I/O; a Matcher is immutable after New
// and safe for concurrent use.
package match

import (
	"log/slog"
	"strings"

	"github.com/lathercraft/brushmatch/internal/catalog"
)

// Matcher runs the strategy chain against normalized input strings.
type Matcher struct {
	set    *catalog.Set
	chain  []Strategy
	logger *slog.Logger
}

// New builds a Matcher over an already-compiled catalog set. The chain order
// is fixed and load-bearing:
//
//  1. correct-match overrides (whole-string, then curated splits)
//  2. high-priority delimiter split (w/, with, in)
//  3. known-brush model patterns
//  4. brand heuristics (Declaration Grooming smart default,
//     Chisel & Hound versioned knots)
//  5. generic brand fallback (excluding handle-matching brands)
//  6. dual-component match on the full string
//  7. neutral delimiter split (/, -, +)
//  8. single-component fallback (handle-only, then knot-only)
func New(set *catalog.Set, logger *slog.Logger) *Matcher {
	known := &knownBrushStrategy{brushes: set.Brushes}
	declaration := newDeclarationStrategy(set.Brushes)
	chisel := newChiselHoundStrategy(set.Brushes)
	otherStrict := &otherBrushStrategy{brushes: set.Brushes}
	otherAll := &otherBrushStrategy{brushes: set.Brushes, includeHandleMatching: true}

	// Knot matchers for split sides, dual-component, and the final
	// fallback. These include handle-matching brands, which the
	// full-string fallback deliberately skips.
	knots := []Strategy{known, declaration, chisel, otherAll}

	chain := []Strategy{
		&correctMatchStrategy{correct: set.Correct},
		&splitStrategy{name: "split_high", delims: highPriorityDelimiters, handles: set.Handles, knots: knots},
		known,
		declaration,
		chisel,
		otherStrict,
		&dualComponentStrategy{handles: set.Handles, knots: knots},
		&splitStrategy{name: "split_neutral", delims: neutralDelimiters, handles: set.Handles, knots: knots},
		&singleComponentStrategy{handles: set.Handles, knots: knots},
	}

	return &Matcher{
		set:    set,
		chain:  chain,
		logger: logger.With(slog.String("component", "matcher")),
	}
}

// Match classifies one input record. The engine matches exclusively on
// normalized; original is carried through untouched. A nil Matched with an
// empty MatchType is the normal "no confident match" outcome.
func (m *Matcher) Match(original, normalized string) Result {
	// Lowercasing here is the single normalization point the resolver and
	// every recorded substring depend on.
	normalized = strings.ToLower(strings.TrimSpace(normalized))

	for _, s := range m.chain {
		r := s.Match(normalized)
		if r == nil {
			continue
		}
		if r.Matched != nil && r.Matched.Strategy == "" {
			r.Matched.Strategy = s.Name()
		}
		r.Original = original
		m.logger.Debug("matched",
			slog.String("strategy", s.Name()),
			slog.String("match_type", string(r.MatchType)),
			slog.String("input", normalized),
		)
		return *r
	}

	m.logger.Debug("no match", slog.String("input", normalized))
	return Result{Original: original}
}

// Catalogs returns the immutable catalog set this matcher was built from.
func (m *Matcher) Catalogs() *catalog.Set {
	return m.set
}
