package metadata

import "encoding/json"

// Source names the provider a normalized record came from.
type Source string

const (
	SourceTMDB Source = "tmdb"
	SourceOMDB Source = "omdb"
)

// Normalized is the provider-agnostic metadata record consumed by the
// prompt composer. Produced once per request; never re-fetched per attempt.
type Normalized struct {
	Source    Source
	Title     string
	Year      string
	Overview  string
	Genres    []string
	Director  string
	Cast      []string
	Languages []string

	// Episode enrichment, populated only for composite ids.
	SeriesTitle   string
	EpisodeTitle  string
	SeasonNumber  int
	EpisodeNumber int

	// Raw keeps the unmodified provider payload for diagnostics.
	Raw json.RawMessage
}

// IsEpisode reports whether the record describes a single episode.
func (n *Normalized) IsEpisode() bool {
	return n != nil && n.SeriesTitle != ""
}
