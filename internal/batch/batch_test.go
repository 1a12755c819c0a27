package batch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lathercraft/brushmatch/internal/catalog"
	"github.com/lathercraft/brushmatch/internal/match"
)

const testBrushYAML = `
known_brushes:
  Simpson:
    Chubby 2:
      fiber: Badger
      patterns:
        - chubby\s*2\b
other_brushes:
  Zenith:
    fiber: Boar
    patterns:
      - zenith
`

const testHandleYAML = `
artisan_handles:
  Dogwood:
    patterns:
      - dogwood
`

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		return path
	}
	set, err := catalog.LoadSet(catalog.Paths{
		Brushes:        write("brushes.yaml", testBrushYAML),
		Handles:        write("handles.yaml", testHandleYAML),
		CorrectMatches: write("correct_matches.yaml", "brush: {}\nsplit_brush: {}\n"),
	})
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	return NewRunner(match.New(set, slog.Default()), nil, slog.Default())
}

func TestRun(t *testing.T) {
	r := newTestRunner(t)

	input := strings.Join([]string{
		`{"original": "Simpson Chubby 2", "normalized": "simpson chubby 2"}`,
		`{"original": "Zenith boar", "normalized": "zenith boar"}`,
		``,
		`{"original": "qwxyz"}`,
	}, "\n")

	stats, err := r.Run(context.Background(), "2026-08-01", strings.NewReader(input))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3 (blank lines skipped)", stats.Total)
	}
	if stats.Matched != 2 {
		t.Errorf("Matched = %d, want 2", stats.Matched)
	}
	if stats.Unmatched != 1 {
		t.Errorf("Unmatched = %d, want 1", stats.Unmatched)
	}
	if stats.ByType[match.TypeRegex] != 1 || stats.ByType[match.TypeBrand] != 1 {
		t.Errorf("ByType = %v, want one regex and one brand", stats.ByType)
	}
}

func TestRun_NormalizesWhenMissing(t *testing.T) {
	r := newTestRunner(t)

	// No normalized field: the runner derives it, diacritics and all.
	input := `{"original": "SIMPSON   Chübby 2"}`
	stats, err := r.Run(context.Background(), "b1", strings.NewReader(input))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Matched != 1 {
		t.Errorf("Matched = %d, want 1", stats.Matched)
	}
}

func TestRun_MalformedLineAborts(t *testing.T) {
	r := newTestRunner(t)

	input := strings.Join([]string{
		`{"original": "Simpson Chubby 2"}`,
		`{not json`,
		`{"original": "Zenith"}`,
	}, "\n")

	_, err := r.Run(context.Background(), "b1", strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name the offending line", err)
	}
}

func TestRun_MissingOriginalAborts(t *testing.T) {
	r := newTestRunner(t)

	input := `{"normalized": "simpson chubby 2"}`
	if _, err := r.Run(context.Background(), "b1", strings.NewReader(input)); err == nil {
		t.Fatal("expected error for record without original")
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	r := newTestRunner(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := `{"original": "Simpson Chubby 2"}`
	if _, err := r.Run(ctx, "b1", strings.NewReader(input)); err == nil {
		t.Fatal("expected context error")
	}
}
