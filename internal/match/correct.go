package match

import (
	"strings"

	"github.com/lathercraft/brushmatch/internal/catalog"
)

// correctMatchStrategy resolves the curated override tables. It is a pure
// exact-string lookup over lowercase keys and short-circuits every other
// strategy when it produces a result.
type correctMatchStrategy struct {
	correct *catalog.CorrectMatches
}

func (s *correctMatchStrategy) Name() string { return "correct_match" }

func (s *correctMatchStrategy) Match(text string) *Result {
	key := strings.ToLower(strings.TrimSpace(text))

	if e := s.correct.Brush(key); e != nil {
		m := composeFromEntry(e, "")
		m.MatchedFrom = SourceFull
		return &Result{Matched: m, MatchType: TypeExact}
	}

	if so := s.correct.Split(key); so != nil {
		// The curated entry already carries both sides; no further
		// splitting is attempted.
		m := composeFromEntry(so.Knot, "")
		m.HandleMaker = so.HandleMaker
		m.HandleText = so.HandleText
		m.KnotText = so.KnotText
		m.MatchedFrom = SourceFull
		return &Result{Matched: m, MatchType: TypeExact}
	}

	return nil
}
