package match

import (
	"regexp"
	"strings"

	"github.com/lathercraft/brushmatch/internal/catalog"
)

// delimiterClass is the semantic class of a split delimiter. It determines
// how the two sides get their roles.
type delimiterClass int

const (
	// classKnotAmbiguous delimiters ("w/", "with") need both sides scored.
	classKnotAmbiguous delimiterClass = iota
	// classHandlePrimary delimiters ("in") fix the roles by convention:
	// users write "<knot> in <handle>".
	classHandlePrimary
	// classNeutral delimiters ("/", "-", "+") are scored like
	// knot-ambiguous but only tried after the full-string strategies fail.
	classNeutral
)

type delimiter struct {
	token string
	class delimiterClass
}

var (
	highPriorityDelimiters = []delimiter{
		{" w/ ", classKnotAmbiguous},
		{" with ", classKnotAmbiguous},
		{" in ", classHandlePrimary},
	}
	neutralDelimiters = []delimiter{
		{" / ", classNeutral},
		{" - ", classNeutral},
		{" + ", classNeutral},
	}
)

// Content-scoring vocabulary. Each hit is an independent additive signal.
var (
	knotSizeRe     = regexp.MustCompile(`(?i)\b\d{2}(\.\d+)?\s*mm\b`)
	versionTokenRe = regexp.MustCompile(`(?i)\b[bv]\s*\d{1,3}\b`)
	handleWordRe   = regexp.MustCompile(`(?i)\bhandle\b`)
	handleVocabRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bstock\b`),
		regexp.MustCompile(`(?i)\bcustom\b`),
		regexp.MustCompile(`(?i)\bartisan\b`),
		regexp.MustCompile(`(?i)\bturned\b`),
		regexp.MustCompile(`(?i)\bwood\b`),
		regexp.MustCompile(`(?i)\bresin\b`),
	}
)

// splitStrategy decomposes a string at an explicit delimiter into a handle
// part and a knot part. Only a delimiter may trigger a split attempt; the
// scoring below decides side assignment, never whether to split.
type splitStrategy struct {
	name    string
	delims  []delimiter
	handles *catalog.HandleCatalog
	knots   []Strategy
}

func (s *splitStrategy) Name() string { return s.name }

func (s *splitStrategy) Match(text string) *Result {
	cand := s.trySplit(text)
	if cand == nil {
		return nil
	}
	return s.compose(cand)
}

// trySplit finds the first delimiter (in class preference order) and builds
// a role-assigned candidate. Returns nil when no delimiter is present or a
// side would be empty.
func (s *splitStrategy) trySplit(text string) *splitCandidate {
	lower := strings.ToLower(text)
	for _, d := range s.delims {
		idx := strings.Index(lower, d.token)
		if idx < 0 {
			continue
		}
		left := strings.TrimSpace(text[:idx])
		right := strings.TrimSpace(text[idx+len(d.token):])
		if left == "" || right == "" {
			continue
		}

		if d.class == classHandlePrimary {
			return &splitCandidate{
				handle:    right,
				knot:      left,
				delimiter: strings.TrimSpace(d.token),
			}
		}

		// Score both orientations; ties keep the left side as handle.
		leftAsHandle := s.scoreAsHandle(left) + s.scoreAsKnot(right)
		leftAsKnot := s.scoreAsKnot(left) + s.scoreAsHandle(right)
		if leftAsKnot > leftAsHandle {
			return &splitCandidate{
				handle:      right,
				knot:        left,
				delimiter:   strings.TrimSpace(d.token),
				handleScore: s.scoreAsHandle(right),
				knotScore:   s.scoreAsKnot(left),
			}
		}
		return &splitCandidate{
			handle:      left,
			knot:        right,
			delimiter:   strings.TrimSpace(d.token),
			handleScore: s.scoreAsHandle(left),
			knotScore:   s.scoreAsKnot(right),
		}
	}
	return nil
}

// scoreAsKnot sums the knot-likelihood signals for one substring.
func (s *splitStrategy) scoreAsKnot(text string) int {
	score := 0
	if hasFiberWord(text) {
		score += 8
	}
	if knotSizeRe.MatchString(text) {
		score += 6
	}
	if versionTokenRe.MatchString(text) {
		score += 6
	}
	matches := 0
	for _, st := range s.knots {
		if st.Match(text) != nil {
			matches++
		}
	}
	if matches > 0 {
		bonus := 4 + 2*(matches-1)
		if bonus > 8 {
			bonus = 8
		}
		score += bonus
	}
	return score
}

// scoreAsHandle sums the handle-likelihood signals for one substring.
func (s *splitStrategy) scoreAsHandle(text string) int {
	score := 0
	if handleWordRe.MatchString(text) {
		score += 10
	}
	if hm := s.handles.Match(text); hm != nil {
		bonus := 6 + 2*hm.Priority
		if bonus > 12 {
			bonus = 12
		}
		score += bonus
	}
	for _, re := range handleVocabRes {
		if re.MatchString(text) {
			score += 2
		}
	}
	return score
}

// compose resolves both sides against the catalogs and merges them into one
// result. A delimiter alone is not enough: at least one side must resolve,
// otherwise the chain moves on.
func (s *splitStrategy) compose(c *splitCandidate) *Result {
	knotRes := firstMatch(s.knots, c.knot)
	handleMatch := s.handles.Match(c.handle)
	if knotRes == nil && handleMatch == nil {
		return nil
	}

	var m *Matched
	result := &Result{MatchType: TypeRegex}

	if knotRes != nil {
		m = knotRes.Matched
		m.MatchedFrom = SourceKnot
		result.Pattern = knotRes.Pattern
	} else {
		m = &Matched{
			MatchedFrom:   SourceHandle,
			FiberStrategy: FiberFromDefault,
		}
		result.Pattern = handleMatch.Pattern.Raw
	}
	if handleMatch != nil {
		m.HandleMaker = handleMatch.Maker
	}

	m.HandleText = c.handle
	m.KnotText = c.knot
	m.Strategy = s.name
	result.Matched = m
	return result
}
