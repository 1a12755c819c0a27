// Package watcher drives watch mode: it monitors the input directory for new
// batch files and the catalog directory for edits. A catalog edit rebuilds a
// fresh matcher through the reload callback; compiled catalogs themselves
// stay immutable.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Service watches the catalog and input directories.
type Service struct {
	catalogDir string
	inputDir   string
	reload     func(ctx context.Context) error
	process    func(ctx context.Context, path string) error
	logger     *slog.Logger
	debounce   time.Duration
}

// NewService creates a watcher. reload is called after catalog edits settle;
// process is called once per new input file.
func NewService(catalogDir, inputDir string, reload func(ctx context.Context) error, process func(ctx context.Context, path string) error, logger *slog.Logger) *Service {
	return &Service{
		catalogDir: catalogDir,
		inputDir:   inputDir,
		reload:     reload,
		process:    process,
		logger:     logger.With(slog.String("component", "watcher")),
		debounce:   1 * time.Second,
	}
}

// SetDebounce overrides the default debounce interval (for testing).
func (s *Service) SetDebounce(d time.Duration) {
	s.debounce = d
}

// Start blocks until ctx is canceled, dispatching catalog reloads and input
// batches as filesystem events arrive.
func (s *Service) Start(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close() //nolint:errcheck

	for _, dir := range []string{s.catalogDir, s.inputDir} {
		if err := w.Add(dir); err != nil {
			return err
		}
	}
	s.logger.Info("watching",
		slog.String("catalog_dir", s.catalogDir),
		slog.String("input_dir", s.inputDir),
	)

	// Debounce timer for coalescing bursts of events into one action.
	// Starts stopped; reset on each relevant event.
	debounceTimer := time.NewTimer(0)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}
	reloadPending := false
	pendingInputs := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("watcher stopping")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			switch filepath.Dir(ev.Name) {
			case s.catalogDir:
				if !isYAML(ev.Name) {
					continue
				}
				s.logger.Info("catalog changed", slog.String("path", ev.Name))
				reloadPending = true
			case s.inputDir:
				if !strings.HasSuffix(ev.Name, ".ndjson") {
					continue
				}
				pendingInputs[ev.Name] = struct{}{}
			default:
				continue
			}
			resetTimer(debounceTimer, s.debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("fsnotify error", "error", err)

		case <-debounceTimer.C:
			if reloadPending {
				reloadPending = false
				s.logger.Info("debounce elapsed, reloading catalogs")
				if err := s.reload(ctx); err != nil {
					// A bad catalog edit should not kill watch mode;
					// the previous matcher stays in service.
					s.logger.Error("catalog reload failed", "error", err)
				}
			}
			for _, path := range sortedKeys(pendingInputs) {
				delete(pendingInputs, path)
				if info, err := os.Stat(path); err != nil || info.IsDir() {
					continue
				}
				if err := s.process(ctx, path); err != nil {
					s.logger.Error("processing input file failed",
						slog.String("path", path), slog.Any("error", err))
				}
			}
		}
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

func isYAML(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
