package match

import "github.com/lathercraft/brushmatch/internal/catalog"

// Type describes how a match was found.
type Type string

// Match types. The zero value means no match and serializes as an absent
// match_type field.
const (
	TypeExact Type = "exact" // correct-match override, both tables
	TypeRegex Type = "regex" // model-level pattern, split, or dual-component match
	TypeAlias Type = "alias" // brand heuristic mapped a bare model code to its home brand
	TypeBrand Type = "brand" // brand-level fallback pattern or single-component fallback
)

// Source marks which part of the input the winning match came from.
type Source string

// Match sources.
const (
	SourceFull   Source = "full"
	SourceHandle Source = "handle"
	SourceKnot   Source = "knot"
)

// Fiber provenance values.
const (
	FiberFromDefault = "default"    // no fiber in the user's text, catalog default used
	FiberFromUser    = "user_input" // user's text agrees with (or supplies) the fiber
	FiberFromCatalog = "yaml"       // user's text disagrees, catalog wins
)

// Matched is the structured record produced for a matched input.
type Matched struct {
	Brand       string        `json:"brand,omitempty"`
	Model       string        `json:"model,omitempty"`
	Fiber       catalog.Fiber `json:"fiber,omitempty"`
	KnotSizeMM  *float64      `json:"knot_size_mm,omitempty"`
	HandleMaker string        `json:"handle_maker,omitempty"`

	FiberStrategy string `json:"fiber_strategy,omitempty"`
	FiberConflict string `json:"fiber_conflict,omitempty"`

	// Provenance.
	Strategy    string `json:"strategy,omitempty"`
	MatchedFrom Source `json:"matched_from,omitempty"`
	HandleText  string `json:"handle_text,omitempty"`
	KnotText    string `json:"knot_text,omitempty"`

	// Extra carries catalog fields the engine does not interpret,
	// preserved in full from the matched entry.
	Extra map[string]any `json:"extra,omitempty"`
}

// Result is the engine's output for one input record. Matched is nil and
// MatchType empty when no strategy produced a confident match; that is a
// normal outcome, not an error.
type Result struct {
	Original  string   `json:"original"`
	Matched   *Matched `json:"matched"`
	MatchType Type     `json:"match_type,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
}

// splitCandidate is the splitter's intermediate value: two substrings with
// the scores that decided their roles. Never persisted.
type splitCandidate struct {
	handle      string
	knot        string
	delimiter   string
	handleScore int
	knotScore   int
}
