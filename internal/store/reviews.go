package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"quickreviewer/internal/media"
)

const reviewColumns = "id, media_type, timestamp_ms, review, verdict, summary_json"

// Read returns the cached review for id, or nil when absent or expired.
// Expired rows are evicted lazily.
func (s *Store) Read(ctx context.Context, id string) (*CachedReview, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE id = ?", id)
	cached, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read review %q: %w", id, err)
	}
	if s.expired(cached.TimestampMs) {
		if _, err := s.execWithRetry(ctx, "DELETE FROM reviews WHERE id = ?", id); err != nil {
			return nil, fmt.Errorf("evict expired review %q: %w", id, err)
		}
		return nil, nil
	}
	return cached, nil
}

// Write upserts a cached review. Last write wins.
func (s *Store) Write(ctx context.Context, cached *CachedReview) error {
	if cached == nil {
		return errors.New("store: nil review")
	}
	summary, err := encodeSummary(cached.SummaryBullets)
	if err != nil {
		return fmt.Errorf("write review %q: %w", cached.ID, err)
	}
	_, err = s.execWithRetry(ensureContext(ctx),
		`INSERT INTO reviews (id, media_type, timestamp_ms, review, verdict, summary_json)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   media_type = excluded.media_type,
		   timestamp_ms = excluded.timestamp_ms,
		   review = excluded.review,
		   verdict = excluded.verdict,
		   summary_json = excluded.summary_json`,
		cached.ID, string(cached.MediaType), cached.TimestampMs,
		cached.Review, nullableString(cached.Verdict), summary)
	if err != nil {
		return fmt.Errorf("write review %q: %w", cached.ID, err)
	}
	return nil
}

// ListRecent returns non-expired entries ordered newest first.
func (s *Store) ListRecent(ctx context.Context) ([]Entry, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, media_type, timestamp_ms FROM reviews WHERE timestamp_ms > ? ORDER BY timestamp_ms DESC",
		s.expiryCutoff())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			mediaType string
		)
		if err := rows.Scan(&entry.ID, &mediaType, &entry.TimestampMs); err != nil {
			return nil, fmt.Errorf("scan review entry: %w", err)
		}
		entry.MediaType = media.Type(mediaType)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return entries, nil
}

// SweepExpired removes every expired row and reports how many were evicted.
func (s *Store) SweepExpired(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ensureContext(ctx),
		"DELETE FROM reviews WHERE timestamp_ms <= ?", s.expiryCutoff())
	if err != nil {
		return 0, fmt.Errorf("sweep expired reviews: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sweep expired reviews: %w", err)
	}
	return removed, nil
}

// Clear removes every cached review.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.execWithRetry(ensureContext(ctx), "DELETE FROM reviews"); err != nil {
		return fmt.Errorf("clear reviews: %w", err)
	}
	return nil
}

func (s *Store) expired(timestampMs int64) bool {
	return timestampMs <= s.expiryCutoff()
}

func (s *Store) expiryCutoff() int64 {
	return s.nowMillis() - TTLMillis
}

func scanReview(scanner interface{ Scan(dest ...any) error }) (*CachedReview, error) {
	var (
		id          string
		mediaType   string
		timestampMs int64
		review      string
		verdict     sql.NullString
		summaryJSON sql.NullString
	)
	if err := scanner.Scan(&id, &mediaType, &timestampMs, &review, &verdict, &summaryJSON); err != nil {
		return nil, err
	}
	cached := &CachedReview{
		ID:          id,
		MediaType:   media.Type(mediaType),
		TimestampMs: timestampMs,
		Review:      review,
		Verdict:     verdict.String,
	}
	if summaryJSON.Valid && summaryJSON.String != "" {
		if err := json.Unmarshal([]byte(summaryJSON.String), &cached.SummaryBullets); err != nil {
			return nil, fmt.Errorf("decode summary bullets: %w", err)
		}
	}
	return cached, nil
}

func encodeSummary(bullets []string) (any, error) {
	if len(bullets) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(bullets)
	if err != nil {
		return nil, fmt.Errorf("encode summary bullets: %w", err)
	}
	return string(encoded), nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
