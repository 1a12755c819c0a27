// Package store persists match results and answers aggregate queries over
// them. The engine itself never touches the database; ownership of a result
// passes here after matching.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lathercraft/brushmatch/internal/match"
)

// Service reads and writes match results.
type Service struct {
	db *sql.DB
}

// NewService creates a store service over an open database.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Record is one persisted match result.
type Record struct {
	ID         string
	Batch      string
	Normalized string
	Result     match.Result
	CreatedAt  time.Time
}

// Insert writes one match result. batch groups records processed together
// (typically one input file).
func (s *Service) Insert(ctx context.Context, batch, normalized string, r match.Result) (*Record, error) {
	rec := &Record{
		ID:         uuid.New().String(),
		Batch:      batch,
		Normalized: normalized,
		Result:     r,
		CreatedAt:  time.Now().UTC(),
	}

	m := r.Matched
	if m == nil {
		m = &match.Matched{}
	}

	extra := "{}"
	if len(m.Extra) > 0 {
		b, err := json.Marshal(m.Extra)
		if err != nil {
			return nil, fmt.Errorf("encoding extra fields: %w", err)
		}
		extra = string(b)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO match_results (
			id, batch, original, normalized,
			brand, model, fiber, knot_size_mm, handle_maker,
			match_type, pattern, strategy, matched_from,
			handle_text, knot_text, fiber_strategy, fiber_conflict,
			extra, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID, rec.Batch, r.Original, rec.Normalized,
		m.Brand, m.Model, string(m.Fiber), m.KnotSizeMM, m.HandleMaker,
		string(r.MatchType), r.Pattern, m.Strategy, string(m.MatchedFrom),
		m.HandleText, m.KnotText, m.FiberStrategy, m.FiberConflict,
		extra, rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting match result: %w", err)
	}
	return rec, nil
}

// Stats summarizes persisted results, optionally limited to one batch.
type Stats struct {
	Total     int
	Unmatched int
	ByType    map[match.Type]int
}

// Stats aggregates match-type counts. An empty batch covers all rows.
func (s *Service) Stats(ctx context.Context, batch string) (*Stats, error) {
	query := `SELECT match_type, COUNT(*) FROM match_results GROUP BY match_type`
	args := []any{}
	if batch != "" {
		query = `SELECT match_type, COUNT(*) FROM match_results WHERE batch = ? GROUP BY match_type`
		args = append(args, batch)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	st := &Stats{ByType: make(map[match.Type]int)}
	for rows.Next() {
		var mt string
		var n int
		if err := rows.Scan(&mt, &n); err != nil {
			return nil, fmt.Errorf("scanning stats: %w", err)
		}
		st.Total += n
		if mt == "" {
			st.Unmatched += n
		} else {
			st.ByType[match.Type(mt)] = n
		}
	}
	return st, rows.Err()
}

// Unmatched lists the most recent unmatched originals, for curation. These
// are the candidates a reviewer promotes into the correct-match table.
func (s *Service) Unmatched(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT original FROM match_results
		WHERE match_type = '' ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing unmatched: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var originals []string
	for rows.Next() {
		var o string
		if err := rows.Scan(&o); err != nil {
			return nil, fmt.Errorf("scanning unmatched: %w", err)
		}
		originals = append(originals, o)
	}
	return originals, rows.Err()
}
