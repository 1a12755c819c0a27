package match

import (
	"regexp"
	"strings"

	"github.com/lathercraft/brushmatch/internal/catalog"
)

// declarationStrategy applies the Declaration Grooming smart default: a bare
// B-series code ("B2", "B15") with no competing brand context belongs to
// Declaration Grooming. An explicit competing brand token suppresses the
// default entirely.
type declarationStrategy struct {
	brushes *catalog.BrushCatalog
	codeRe  *regexp.Regexp
	blockRe *regexp.Regexp
}

const declarationBrand = "Declaration Grooming"

// Brand name variants that suppress the smart default even when the catalog
// spells them differently.
var declarationBlockVariants = []string{
	`c&h`, `chis\w*\s*(&|and)\s*hou\w*`, `zen\w*`, `omega`, `semogue`, `simpson`, `elite`,
}

func newDeclarationStrategy(brushes *catalog.BrushCatalog) *declarationStrategy {
	variants := append([]string(nil), declarationBlockVariants...)
	for _, brand := range brushes.Brands() {
		if brand == declarationBrand {
			continue
		}
		variants = append(variants, regexp.QuoteMeta(strings.ToLower(brand)))
	}
	return &declarationStrategy{
		brushes: brushes,
		codeRe:  regexp.MustCompile(`(?i)\bb(\d{1,2})\b`),
		blockRe: regexp.MustCompile(`(?i)\b(` + strings.Join(variants, "|") + `)\b`),
	}
}

func (s *declarationStrategy) Name() string { return "declaration_grooming" }

func (s *declarationStrategy) Match(text string) *Result {
	code := s.codeRe.FindString(text)
	if code == "" {
		return nil
	}
	if s.blockRe.MatchString(text) {
		return nil
	}

	// The default only covers codes the catalog actually declares.
	entry := s.brushes.Lookup(declarationBrand, strings.ToUpper(code))
	if entry == nil {
		return nil
	}

	m := composeFromEntry(entry, text)
	m.MatchedFrom = SourceFull
	return &Result{Matched: m, MatchType: TypeAlias, Pattern: s.codeRe.String()}
}

// chiselHoundStrategy matches the Chisel & Hound versioned knot line. The
// version token is only accepted inside the produced range; anything outside
// it must not match, even with correct surrounding text.
type chiselHoundStrategy struct {
	brushes   *catalog.BrushCatalog
	versionRe *regexp.Regexp
	brandRe   *regexp.Regexp
}

const (
	chiselHoundBrand      = "Chisel & Hound"
	chiselHoundMinVersion = 10
	chiselHoundMaxVersion = 27
)

func newChiselHoundStrategy(brushes *catalog.BrushCatalog) *chiselHoundStrategy {
	return &chiselHoundStrategy{
		brushes:   brushes,
		versionRe: regexp.MustCompile(`(?i)\bv\s*(\d{1,3})\b`),
		brandRe:   regexp.MustCompile(`(?i)\b(chis\w*\s*(&|and)\s*hou\w*|c&h)\b`),
	}
}

func (s *chiselHoundStrategy) Name() string { return "chisel_hound" }

func (s *chiselHoundStrategy) Match(text string) *Result {
	groups := s.versionRe.FindStringSubmatch(text)
	if groups == nil {
		return nil
	}
	version := 0
	for _, d := range groups[1] {
		version = version*10 + int(d-'0')
	}
	if version < chiselHoundMinVersion || version > chiselHoundMaxVersion {
		return nil
	}

	// Accept an explicit brand token, or a string that is nothing but the
	// version token itself.
	bare := strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(groups[0]))
	if !bare && !s.brandRe.MatchString(text) {
		return nil
	}

	entry := s.brushes.LookupBrand(chiselHoundBrand)
	if entry == nil {
		return nil
	}

	m := composeFromEntry(entry, text)
	m.Model = "V" + groups[1]
	m.MatchedFrom = SourceFull
	return &Result{Matched: m, MatchType: TypeAlias, Pattern: s.versionRe.String()}
}
