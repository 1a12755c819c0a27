// Package batch runs the matcher over NDJSON record streams produced by the
// extraction stage. Matching is sequential on purpose: a single match costs
// microseconds and per-record parallelism has measured negative returns, so
// any worthwhile parallelism belongs to the caller at whole-batch
// granularity.
package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/lathercraft/brushmatch/internal/match"
	"github.com/lathercraft/brushmatch/internal/normalize"
	"github.com/lathercraft/brushmatch/internal/store"
)

// InputRecord is one line of extractor output. The engine matches on
// Normalized only; Original is carried through for traceability.
type InputRecord struct {
	Original   string `json:"original"`
	Normalized string `json:"normalized"`
}

// Stats summarizes one batch run.
type Stats struct {
	Total     int
	Matched   int
	Unmatched int
	ByType    map[match.Type]int
}

// Runner matches batches and persists the results.
type Runner struct {
	matcher *match.Matcher
	store   *store.Service
	logger  *slog.Logger
}

// NewRunner creates a batch runner. store may be nil for dry runs.
func NewRunner(matcher *match.Matcher, store *store.Service, logger *slog.Logger) *Runner {
	return &Runner{
		matcher: matcher,
		store:   store,
		logger:  logger.With(slog.String("component", "batch")),
	}
}

// Run matches every NDJSON record on r under the given batch name. A record
// without a normalized field is normalized here; a malformed line is a data
// defect and aborts the batch with its line number.
func (b *Runner) Run(ctx context.Context, name string, r io.Reader) (*Stats, error) {
	stats := &Stats{ByType: make(map[match.Type]int)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec InputRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return stats, fmt.Errorf("batch %s line %d: %w", name, line, err)
		}
		if rec.Original == "" {
			return stats, fmt.Errorf("batch %s line %d: missing original", name, line)
		}
		if rec.Normalized == "" {
			rec.Normalized = normalize.Normalize(rec.Original)
		}

		result := b.matcher.Match(rec.Original, rec.Normalized)

		stats.Total++
		if result.Matched != nil {
			stats.Matched++
			stats.ByType[result.MatchType]++
		} else {
			stats.Unmatched++
		}

		if b.store != nil {
			if _, err := b.store.Insert(ctx, name, rec.Normalized, result); err != nil {
				return stats, fmt.Errorf("batch %s line %d: %w", name, line, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("reading batch %s: %w", name, err)
	}

	b.logger.Info("batch complete",
		slog.String("batch", name),
		slog.Int("total", stats.Total),
		slog.Int("matched", stats.Matched),
		slog.Int("unmatched", stats.Unmatched),
	)
	return stats, nil
}
