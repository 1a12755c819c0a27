package match

import "github.com/lathercraft/brushmatch/internal/catalog"

// Strategy is one matching attempt. Match returns nil when the strategy has
// no answer; that is the expected-absence branch, never an error. Strategies
// are pure functions of the compiled catalogs and the input string.
type Strategy interface {
	Name() string
	Match(text string) *Result
}

// knownBrushStrategy matches model-level patterns from the known_brushes
// section. Unambiguous catalog matches, so it runs before the brand
// heuristics.
type knownBrushStrategy struct {
	brushes *catalog.BrushCatalog
}

func (s *knownBrushStrategy) Name() string { return "known_brush" }

func (s *knownBrushStrategy) Match(text string) *Result {
	entry, pattern := s.brushes.MatchKnown(text)
	if entry == nil {
		return nil
	}
	m := composeFromEntry(entry, text)
	m.MatchedFrom = SourceFull
	return &Result{Matched: m, MatchType: TypeRegex, Pattern: pattern.Raw}
}

// otherBrushStrategy matches brand-level fallback patterns. It runs after
// every model-level and heuristic strategy because a bare brand name is the
// weakest full-string signal. Brands flagged handle_matching sell handles
// and knots under the same name; the full-string pass skips them so the
// dual-component and fallback steps can resolve both roles, while split
// sides and knot-only matching include them.
type otherBrushStrategy struct {
	brushes               *catalog.BrushCatalog
	includeHandleMatching bool
}

func (s *otherBrushStrategy) Name() string { return "other_brush" }

func (s *otherBrushStrategy) Match(text string) *Result {
	keep := func(e *catalog.Entry) bool {
		return s.includeHandleMatching || !e.HandleMatching
	}
	entry, pattern := s.brushes.MatchBrandWhere(text, keep)
	if entry == nil {
		return nil
	}
	m := composeFromEntry(entry, text)
	m.MatchedFrom = SourceFull
	return &Result{Matched: m, MatchType: TypeBrand, Pattern: pattern.Raw}
}

// dualComponentStrategy matches the same original string independently as a
// handle-maker string and as a knot string. Some makers sell unified
// handle+knot products recognizable on both sides, so this outranks the
// neutral-delimiter split.
type dualComponentStrategy struct {
	handles *catalog.HandleCatalog
	knots   []Strategy
}

func (s *dualComponentStrategy) Name() string { return "dual_component" }

func (s *dualComponentStrategy) Match(text string) *Result {
	hm := s.handles.Match(text)
	if hm == nil {
		return nil
	}
	knot := firstMatch(s.knots, text)
	if knot == nil {
		return nil
	}
	knot.Matched.HandleMaker = hm.Maker
	knot.Matched.MatchedFrom = SourceFull
	knot.Matched.Strategy = s.Name()
	knot.MatchType = TypeRegex
	return knot
}

// singleComponentStrategy is the last resort: the whole string as
// handle-only, then as knot-only.
type singleComponentStrategy struct {
	handles *catalog.HandleCatalog
	knots   []Strategy
}

func (s *singleComponentStrategy) Name() string { return "single_component" }

func (s *singleComponentStrategy) Match(text string) *Result {
	if hm := s.handles.Match(text); hm != nil {
		m := &Matched{
			HandleMaker:   hm.Maker,
			MatchedFrom:   SourceHandle,
			FiberStrategy: FiberFromDefault,
		}
		return &Result{Matched: m, MatchType: TypeBrand, Pattern: hm.Pattern.Raw}
	}
	if knot := firstMatch(s.knots, text); knot != nil {
		knot.Matched.MatchedFrom = SourceKnot
		knot.MatchType = TypeBrand
		return knot
	}
	return nil
}

// firstMatch runs strategies in order and returns the first result.
func firstMatch(strategies []Strategy, text string) *Result {
	for _, s := range strategies {
		if r := s.Match(text); r != nil {
			if r.Matched != nil && r.Matched.Strategy == "" {
				r.Matched.Strategy = s.Name()
			}
			return r
		}
	}
	return nil
}
