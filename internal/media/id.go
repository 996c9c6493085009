package media

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Type discriminates the two review shapes the pipeline produces.
type Type string

const (
	TypeMovie  Type = "movie"
	TypeSeries Type = "series"
)

// ParseType converts a user-supplied media type string.
func ParseType(value string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "movie":
		return TypeMovie, nil
	case "series", "tv", "episode":
		return TypeSeries, nil
	default:
		return "", fmt.Errorf("unknown media type %q", value)
	}
}

// ID identifies a movie or a single episode. Immutable once parsed.
type ID struct {
	SeriesID string
	Season   int
	Episode  int

	raw string
}

// ParseID parses either a simple movie id or the composite episode triple.
// Season/episode segments tolerate optional "S"/"E" prefixes.
func ParseID(value string) (ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ID{}, errors.New("media id must not be empty")
	}

	segments := strings.Split(trimmed, ":")
	switch len(segments) {
	case 1:
		return ID{raw: trimmed}, nil
	case 3:
		seriesID := strings.TrimSpace(segments[0])
		if seriesID == "" {
			return ID{}, fmt.Errorf("composite id %q has empty series segment", trimmed)
		}
		season, err := parseNumberSegment(segments[1], "S")
		if err != nil {
			return ID{}, fmt.Errorf("composite id %q: %w", trimmed, err)
		}
		episode, err := parseNumberSegment(segments[2], "E")
		if err != nil {
			return ID{}, fmt.Errorf("composite id %q: %w", trimmed, err)
		}
		return ID{SeriesID: seriesID, Season: season, Episode: episode, raw: trimmed}, nil
	default:
		return ID{}, fmt.Errorf("media id %q must have one or three colon-separated segments", trimmed)
	}
}

func parseNumberSegment(segment, prefix string) (int, error) {
	cleaned := strings.TrimSpace(segment)
	cleaned = strings.TrimPrefix(cleaned, strings.ToLower(prefix))
	cleaned = strings.TrimPrefix(cleaned, strings.ToUpper(prefix))
	number, err := strconv.Atoi(cleaned)
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("segment %q is not a positive number", segment)
	}
	return number, nil
}

// IsEpisode reports whether the id addresses a single episode.
func (id ID) IsEpisode() bool {
	return id.SeriesID != ""
}

// BaseID returns the provider-facing identifier: the series id for episodes,
// the plain id otherwise.
func (id ID) BaseID() string {
	if id.IsEpisode() {
		return id.SeriesID
	}
	return id.raw
}

// String returns the canonical encoding used for cache keys and logs.
func (id ID) String() string {
	if id.IsEpisode() {
		return fmt.Sprintf("%s:S%d:E%d", id.SeriesID, id.Season, id.Episode)
	}
	return id.raw
}

// EpisodeLabel returns the conventional SxxEyy label, or "" for movies.
func (id ID) EpisodeLabel() string {
	if !id.IsEpisode() {
		return ""
	}
	return fmt.Sprintf("S%02dE%02d", id.Season, id.Episode)
}
