package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testBrushYAML = `
known_brushes:
  Simpson:
    Chubby 2:
      fiber: Badger
      knot_size_mm: 27
      loft_mm: 55
      patterns:
        - simp.*chubby\s*2\b
        - chubby\s*2\b
  Declaration Grooming:
    handle_matching: true
    fiber: Badger
    B2:
      knot_size_mm: 28
      patterns:
        - declaration.*\bb2\b
other_brushes:
  Elite:
    fiber: Badger
    patterns:
      - \belite\b
  Zenith:
    fiber: Boar
    patterns:
      - zenith
`

const testHandleYAML = `
artisan_handles:
  Elite:
    patterns:
      - \belite\b
manufacturer_handles:
  Zenith:
    patterns:
      - zenith
`

const testCorrectYAML = `
brush:
  "the boogeyman b2":
    brand: Declaration Grooming
    model: B2
split_brush:
  "elite zenith franken":
    handle:
      maker: Elite
      text: elite
    knot:
      brand: Zenith
      text: zenith
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func loadTestSet(t *testing.T) *Set {
	t.Helper()
	dir := t.TempDir()
	set, err := LoadSet(Paths{
		Brushes:        writeFile(t, dir, "brushes.yaml", testBrushYAML),
		Handles:        writeFile(t, dir, "handles.yaml", testHandleYAML),
		CorrectMatches: writeFile(t, dir, "correct_matches.yaml", testCorrectYAML),
	})
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	return set
}

func TestLoadBrushes_FieldsAndDefaults(t *testing.T) {
	set := loadTestSet(t)

	e := set.Brushes.Lookup("Simpson", "Chubby 2")
	if e == nil {
		t.Fatal("Simpson / Chubby 2 not loaded")
	}
	if e.Fiber != FiberBadger {
		t.Errorf("Fiber = %q, want Badger", e.Fiber)
	}
	if e.KnotSizeMM == nil || *e.KnotSizeMM != 27 {
		t.Errorf("KnotSizeMM = %v, want 27", e.KnotSizeMM)
	}
	if got := e.Extra["loft_mm"]; got != 55 {
		t.Errorf("Extra[loft_mm] = %v, want 55", got)
	}

	// Brand-level defaults flow down to models.
	dg := set.Brushes.Lookup("Declaration Grooming", "B2")
	if dg == nil {
		t.Fatal("Declaration Grooming / B2 not loaded")
	}
	if dg.Fiber != FiberBadger {
		t.Errorf("inherited Fiber = %q, want Badger", dg.Fiber)
	}
	if !dg.HandleMatching {
		t.Error("inherited HandleMatching = false, want true")
	}
}

func TestLoadBrushes_PatternsSortedLongestFirst(t *testing.T) {
	set := loadTestSet(t)

	e := set.Brushes.Lookup("Simpson", "Chubby 2")
	for i := 1; i < len(e.Patterns); i++ {
		if len(e.Patterns[i-1].Raw) < len(e.Patterns[i].Raw) {
			t.Fatalf("patterns not sorted longest-first: %q before %q",
				e.Patterns[i-1].Raw, e.Patterns[i].Raw)
		}
	}
}

func TestLoadBrushes_InvalidPatternNamesOffender(t *testing.T) {
	dir := t.TempDir()
	bad := `
known_brushes:
  Simpson:
    Chubby 2:
      patterns:
        - "simp.*chubby(("
`
	_, err := LoadBrushes(writeFile(t, dir, "brushes.yaml", bad))
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
	for _, want := range []string{"Simpson", "Chubby 2", "simp.*chubby(("} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not name %q", err, want)
		}
	}
}

func TestLoadBrushes_MissingPatterns(t *testing.T) {
	dir := t.TempDir()
	bad := `
known_brushes:
  Simpson:
    Chubby 2:
      fiber: Badger
`
	if _, err := LoadBrushes(writeFile(t, dir, "brushes.yaml", bad)); err == nil {
		t.Fatal("expected error for entry without patterns")
	}
}

func TestLoadBrushes_UnknownFiber(t *testing.T) {
	dir := t.TempDir()
	bad := `
known_brushes:
  Simpson:
    Chubby 2:
      fiber: Nylon
      patterns: [chubby]
`
	if _, err := LoadBrushes(writeFile(t, dir, "brushes.yaml", bad)); err == nil {
		t.Fatal("expected error for unknown fiber")
	}
}

func TestMatchKnown_LongerPatternWins(t *testing.T) {
	set := loadTestSet(t)

	entry, pattern := set.Brushes.MatchKnown("simpson chubby 2")
	if entry == nil {
		t.Fatal("no match for simpson chubby 2")
	}
	if pattern.Raw != `simp.*chubby\s*2\b` {
		t.Errorf("pattern = %q, want the longer simp.* form", pattern.Raw)
	}
}

func TestMatchKnown_CaseInsensitive(t *testing.T) {
	set := loadTestSet(t)

	for _, text := range []string{"SIMPSON CHUBBY 2", "Simpson Chubby 2", "simpson chubby 2"} {
		if entry, _ := set.Brushes.MatchKnown(text); entry == nil {
			t.Errorf("no match for %q", text)
		}
	}
}

func TestHandleCatalog_SectionPriority(t *testing.T) {
	set := loadTestSet(t)

	elite := set.Handles.LookupMaker("Elite")
	zenith := set.Handles.LookupMaker("Zenith")
	if elite == nil || zenith == nil {
		t.Fatal("handle makers not loaded")
	}
	if elite.Priority <= zenith.Priority {
		t.Errorf("artisan priority %d not above manufacturer priority %d",
			elite.Priority, zenith.Priority)
	}

	hm := set.Handles.Match("elite handle")
	if hm == nil || hm.Maker != "Elite" {
		t.Fatalf("Match(elite handle) = %+v, want Elite", hm)
	}
}

func TestCorrectMatches_Resolution(t *testing.T) {
	set := loadTestSet(t)

	e := set.Correct.Brush("the boogeyman b2")
	if e == nil {
		t.Fatal("brush override not loaded")
	}
	if e.Brand != "Declaration Grooming" || e.Model != "B2" {
		t.Errorf("resolved %s / %s, want Declaration Grooming / B2", e.Brand, e.Model)
	}

	so := set.Correct.Split("elite zenith franken")
	if so == nil {
		t.Fatal("split override not loaded")
	}
	if so.HandleMaker != "Elite" {
		t.Errorf("HandleMaker = %q, want Elite", so.HandleMaker)
	}
	if so.Knot == nil || so.Knot.Brand != "Zenith" {
		t.Errorf("Knot = %+v, want Zenith brand entry", so.Knot)
	}
}

func TestCorrectMatches_RejectsNonLowercaseKey(t *testing.T) {
	dir := t.TempDir()
	set := loadTestSet(t)

	bad := `
brush:
  "The Boogeyman B2":
    brand: Declaration Grooming
    model: B2
`
	_, err := LoadCorrectMatches(writeFile(t, dir, "correct.yaml", bad), set.Brushes, set.Handles)
	if err == nil {
		t.Fatal("expected error for non-lowercase key")
	}
}

func TestCorrectMatches_RejectsDanglingReference(t *testing.T) {
	dir := t.TempDir()
	set := loadTestSet(t)

	bad := `
brush:
  "mystery brush":
    brand: Nobody
    model: Nothing
`
	_, err := LoadCorrectMatches(writeFile(t, dir, "correct.yaml", bad), set.Brushes, set.Handles)
	if err == nil {
		t.Fatal("expected error for dangling brand/model reference")
	}
	if !strings.Contains(err.Error(), "Nobody") {
		t.Errorf("error %q does not name the missing brand", err)
	}
}
