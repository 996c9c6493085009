package store

import "quickreviewer/internal/media"

// CachedReview is the persisted result of one successful generation. Verdict
// is empty and SummaryBullets nil when the payload carries a terminal
// failure message instead of a review.
type CachedReview struct {
	ID             string
	MediaType      media.Type
	TimestampMs    int64
	Review         string
	Verdict        string
	SummaryBullets []string
}

// Entry is one row of the non-expired review listing.
type Entry struct {
	ID          string
	MediaType   media.Type
	TimestampMs int64
}
