package match

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lathercraft/brushmatch/internal/catalog"
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
        - \bdg\b.*\bb2\b
    B15:
      knot_size_mm: 28
      patterns:
        - declaration.*\bb15\b
        - \bdg\b.*\bb15\b
  Zenith:
    B2:
      fiber: Boar
      knot_size_mm: 27
      patterns:
        - zenith.*\bb2\b
  AP Shave Co:
    Synbad:
      fiber: Synthetic
      knot_size_mm: 24
      patterns:
        - \bap\s*shave.*synbad\b
        - \bsynbad\b
other_brushes:
  Elite:
    fiber: Badger
    patterns:
      - \belite\b
  Zenith:
    fiber: Boar
    patterns:
      - zenith
  Omega:
    fiber: Boar
    patterns:
      - omega
  Semogue:
    fiber: Boar
    patterns:
      - semogue
  Chisel & Hound:
    fiber: Badger
    knot_size_mm: 26
    patterns:
      - chis\w*\s*(&|and)\s*hou\w*
      - \bc&h\b
  AP Shave Co:
    handle_matching: true
    fiber: Synthetic
    patterns:
      - \bap\s*shave\s*(co)?\b
  Declaration Grooming:
    handle_matching: true
    fiber: Badger
    patterns:
      - declaration
      - \bdg\b
`

const testHandleYAML = `
artisan_handles:
  Elite:
    patterns:
      - \belite\b
  Dogwood:
    patterns:
      - dogwood
  Grizzly Bay:
    patterns:
      - griz\w*\s*bay
manufacturer_handles:
  Simpson:
    patterns:
      - simpson
  Zenith:
    patterns:
      - zenith
  Declaration Grooming:
    patterns:
      - declaration
      - \bdg\b
  AP Shave Co:
    patterns:
      - \bap\s*shave\s*(co)?\b
`

const testCorrectYAML = `
brush:
  "the boogeyman b2":
    brand: Declaration Grooming
    model: B2
  "simpson chubby 2 in super badger":
    brand: Simpson
    model: Chubby 2
split_brush:
  "the grizzly b15":
    handle:
      maker: Grizzly Bay
      text: grizzly bay handle
    knot:
      brand: Declaration Grooming
      model: B15
      text: declaration b15
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	dir := t.TempDir()
	set, err := catalog.LoadSet(catalog.Paths{
		Brushes:        writeFile(t, dir, "brushes.yaml", testBrushYAML),
		Handles:        writeFile(t, dir, "handles.yaml", testHandleYAML),
		CorrectMatches: writeFile(t, dir, "correct_matches.yaml", testCorrectYAML),
	})
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	return New(set, slog.Default())
}

// mustMatch runs the matcher and fails the test on a nil Matched.
func mustMatch(t *testing.T, m *Matcher, text string) Result {
	t.Helper()
	r := m.Match(text, text)
	if r.Matched == nil {
		t.Fatalf("Match(%q): no match", text)
	}
	return r
}
