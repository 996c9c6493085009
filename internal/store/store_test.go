package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"quickreviewer/internal/media"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenPath(filepath.Join(t.TempDir(), "reviews.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleReview(id string, ts int64) *CachedReview {
	return &CachedReview{
		ID:             id,
		MediaType:      media.TypeMovie,
		TimestampMs:    ts,
		Review:         "**Name of the Movie:** Example",
		Verdict:        "Worth a watch.",
		SummaryBullets: []string{"point one", "point two"},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	written := sampleReview("tt0111161", time.Now().UnixMilli())
	if err := s.Write(ctx, written); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := s.Read(ctx, "tt0111161")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got == nil {
		t.Fatal("expected a cached review")
	}
	if got.Review != written.Review || got.Verdict != written.Verdict {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.SummaryBullets) != 2 || got.SummaryBullets[0] != "point one" {
		t.Fatalf("summary bullets mismatch: %v", got.SummaryBullets)
	}
}

func TestReadMissingReturnsNil(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Read(context.Background(), "tt0000000")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing id, got %+v", got)
	}
}

func TestWriteUpsertLastWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UnixMilli()

	if err := s.Write(ctx, sampleReview("tt1", now)); err != nil {
		t.Fatalf("first write: %v", err)
	}
	second := sampleReview("tt1", now+1)
	second.Review = "replacement"
	second.Verdict = ""
	second.SummaryBullets = nil
	if err := s.Write(ctx, second); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, err := s.Read(ctx, "tt1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Review != "replacement" {
		t.Fatalf("expected last write to win, got %q", got.Review)
	}
	if got.Verdict != "" || got.SummaryBullets != nil {
		t.Fatalf("expected null verdict/summary, got %+v", got)
	}
}

func TestReadTTLBoundary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	writtenAt := time.Now()
	if err := s.Write(ctx, sampleReview("tt1", writtenAt.UnixMilli())); err != nil {
		t.Fatalf("write: %v", err)
	}

	s.SetClock(func() time.Time { return writtenAt.Add(TTL - time.Millisecond) })
	got, err := s.Read(ctx, "tt1")
	if err != nil {
		t.Fatalf("read before expiry: %v", err)
	}
	if got == nil {
		t.Fatal("entry just inside the TTL must be returned")
	}

	s.SetClock(func() time.Time { return writtenAt.Add(TTL) })
	got, err = s.Read(ctx, "tt1")
	if err != nil {
		t.Fatalf("read at expiry: %v", err)
	}
	if got != nil {
		t.Fatal("entry at exactly TTL age must be treated as absent")
	}

	// The expired row was lazily evicted, so a fresh clock still sees nothing.
	s.SetClock(time.Now)
	got, err = s.Read(ctx, "tt1")
	if err != nil {
		t.Fatalf("read after eviction: %v", err)
	}
	if got != nil {
		t.Fatal("lazy eviction should have removed the row")
	}
}

func TestListRecentOrdersAndFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := s.Write(ctx, sampleReview("old", now.Add(-TTL-time.Hour).UnixMilli())); err != nil {
		t.Fatalf("write old: %v", err)
	}
	if err := s.Write(ctx, sampleReview("newer", now.Add(-time.Hour).UnixMilli())); err != nil {
		t.Fatalf("write newer: %v", err)
	}
	if err := s.Write(ctx, sampleReview("newest", now.UnixMilli())); err != nil {
		t.Fatalf("write newest: %v", err)
	}

	entries, err := s.ListRecent(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 non-expired entries, got %d", len(entries))
	}
	if entries[0].ID != "newest" || entries[1].ID != "newer" {
		t.Fatalf("expected newest-first ordering, got %v", entries)
	}
}

func TestSweepExpired(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := s.Write(ctx, sampleReview("stale1", now.Add(-TTL-time.Minute).UnixMilli())); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Write(ctx, sampleReview("stale2", now.Add(-TTL-time.Hour).UnixMilli())); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Write(ctx, sampleReview("fresh", now.UnixMilli())); err != nil {
		t.Fatalf("write: %v", err)
	}

	removed, err := s.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 evictions, got %d", removed)
	}
	entries, err := s.ListRecent(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "fresh" {
		t.Fatalf("unexpected survivors: %v", entries)
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Write(ctx, sampleReview("tt1", time.Now().UnixMilli())); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	entries, err := s.ListRecent(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty store, got %v", entries)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reviews.db")
	s, err := OpenPath(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Write(context.Background(), sampleReview("tt1", time.Now().UnixMilli())); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenPath(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Read(context.Background(), "tt1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got == nil {
		t.Fatal("expected persisted review after reopen")
	}
}
