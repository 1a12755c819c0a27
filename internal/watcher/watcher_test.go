package watcher

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestService(t *testing.T, reloadCount *atomic.Int32, processed *processedPaths) (*Service, string, string) {
	t.Helper()
	catalogDir := t.TempDir()
	inputDir := t.TempDir()

	reload := func(_ context.Context) error {
		reloadCount.Add(1)
		return nil
	}
	process := func(_ context.Context, path string) error {
		processed.add(path)
		return nil
	}

	svc := NewService(catalogDir, inputDir, reload, process, slog.Default())
	svc.SetDebounce(50 * time.Millisecond)
	return svc, catalogDir, inputDir
}

type processedPaths struct {
	mu    sync.Mutex
	paths []string
}

func (p *processedPaths) add(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append(p.paths, path)
}

func (p *processedPaths) list() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.paths...)
}

func TestCatalogEditTriggersReload(t *testing.T) {
	var reloadCount atomic.Int32
	var processed processedPaths
	svc, catalogDir, _ := newTestService(t, &reloadCount, &processed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Start(ctx) //nolint:errcheck
	time.Sleep(100 * time.Millisecond) // let watcher initialize

	if err := os.WriteFile(filepath.Join(catalogDir, "brushes.yaml"), []byte("known_brushes: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := reloadCount.Load(); got != 1 {
		t.Errorf("expected 1 reload, got %d", got)
	}
}

func TestCatalogEditsCoalesce(t *testing.T) {
	var reloadCount atomic.Int32
	var processed processedPaths
	svc, catalogDir, _ := newTestService(t, &reloadCount, &processed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Start(ctx) //nolint:errcheck
	time.Sleep(100 * time.Millisecond)

	// A burst of edits must produce one reload.
	for i := 0; i < 5; i++ {
		name := filepath.Join(catalogDir, "brushes.yaml")
		if err := os.WriteFile(name, []byte("known_brushes: {}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(300 * time.Millisecond)
	if got := reloadCount.Load(); got != 1 {
		t.Errorf("expected 1 coalesced reload, got %d", got)
	}
}

func TestNonYAMLCatalogFileIgnored(t *testing.T) {
	var reloadCount atomic.Int32
	var processed processedPaths
	svc, catalogDir, _ := newTestService(t, &reloadCount, &processed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Start(ctx) //nolint:errcheck
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(catalogDir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := reloadCount.Load(); got != 0 {
		t.Errorf("expected 0 reloads for non-YAML file, got %d", got)
	}
}

func TestNewInputFileProcessed(t *testing.T) {
	var reloadCount atomic.Int32
	var processed processedPaths
	svc, _, inputDir := newTestService(t, &reloadCount, &processed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Start(ctx) //nolint:errcheck
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(inputDir, "batch.ndjson")
	if err := os.WriteFile(path, []byte(`{"original":"x"}`+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// A non-batch file in the same directory stays ignored.
	if err := os.WriteFile(filepath.Join(inputDir, "ignore.csv"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	got := processed.list()
	if len(got) != 1 || got[0] != path {
		t.Errorf("processed = %v, want [%s]", got, path)
	}
}

func TestFailedReloadKeepsWatching(t *testing.T) {
	catalogDir := t.TempDir()
	inputDir := t.TempDir()

	var reloadCount atomic.Int32
	reload := func(_ context.Context) error {
		reloadCount.Add(1)
		return errors.New("bad catalog")
	}

	svc := NewService(catalogDir, inputDir, reload,
		func(_ context.Context, _ string) error { return nil }, slog.Default())
	svc.SetDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Start(ctx) //nolint:errcheck
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 2; i++ {
		if err := os.WriteFile(filepath.Join(catalogDir, "brushes.yaml"), []byte("x: {}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		time.Sleep(300 * time.Millisecond)
	}

	// The second edit still reaches the (failing) reload callback.
	if got := reloadCount.Load(); got != 2 {
		t.Errorf("expected 2 reload attempts, got %d", got)
	}
}

func TestStartReturnsOnCancel(t *testing.T) {
	var reloadCount atomic.Int32
	var processed processedPaths
	svc, _, _ := newTestService(t, &reloadCount, &processed)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v, want nil on cancel", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
