package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"quickreviewer/internal/logging"
	"quickreviewer/internal/media"
	"quickreviewer/internal/metadata/omdb"
	"quickreviewer/internal/metadata/tmdb"
)

// ErrUnavailable reports that no provider returned a usable record. The
// attempt loop treats this as terminal for the request; it is never retried
// within the same call.
var ErrUnavailable = errors.New("metadata unavailable")

// Resolver resolves identifiers against TMDB first and falls back to OMDb.
type Resolver struct {
	tmdb   tmdb.Lookup
	omdb   omdb.Lookup
	logger *slog.Logger
}

// NewResolver constructs a resolver. The OMDb lookup may be nil, which
// disables the fallback.
func NewResolver(primary tmdb.Lookup, fallback omdb.Lookup, logger *slog.Logger) *Resolver {
	return &Resolver{
		tmdb:   primary,
		omdb:   fallback,
		logger: logging.NewComponentLogger(logger, "metadata"),
	}
}

// Resolve produces the normalized metadata for an identifier. For episode
// ids it additionally resolves series-level metadata and the episode title,
// combined into a single record.
func (r *Resolver) Resolve(ctx context.Context, id media.ID, mediaType media.Type) (*Normalized, error) {
	primary, primaryErr := r.resolveTMDB(ctx, id, mediaType)
	if primaryErr == nil {
		return primary, nil
	}
	r.logger.Warn("primary metadata lookup failed",
		logging.String(logging.FieldMediaID, id.String()),
		logging.Error(primaryErr))

	if r.omdb == nil {
		return nil, fmt.Errorf("%w: tmdb: %s", ErrUnavailable, primaryErr)
	}

	fallback, fallbackErr := r.resolveOMDB(ctx, id)
	if fallbackErr == nil {
		return fallback, nil
	}
	r.logger.Warn("fallback metadata lookup failed",
		logging.String(logging.FieldMediaID, id.String()),
		logging.Error(fallbackErr))

	return nil, fmt.Errorf("%w: tmdb: %s; omdb: %s", ErrUnavailable, primaryErr, fallbackErr)
}

func (r *Resolver) resolveTMDB(ctx context.Context, id media.ID, mediaType media.Type) (*Normalized, error) {
	if r.tmdb == nil {
		return nil, errors.New("tmdb lookup not configured")
	}

	found, err := r.tmdb.FindByIMDbID(ctx, id.BaseID())
	if err != nil {
		return nil, err
	}

	if id.IsEpisode() || mediaType == media.TypeSeries {
		if len(found.TVResults) == 0 {
			return nil, fmt.Errorf("no tv match for %s", id.BaseID())
		}
		details, err := r.tmdb.GetTVDetails(ctx, found.TVResults[0].ID)
		if err != nil {
			return nil, err
		}
		normalized := normalizeTMDBDetails(details)
		if !id.IsEpisode() {
			return normalized, nil
		}
		return r.enrichEpisode(ctx, id, found.TVResults[0].ID, normalized), nil
	}

	if len(found.MovieResults) == 0 {
		return nil, fmt.Errorf("no movie match for %s", id.BaseID())
	}
	details, err := r.tmdb.GetMovieDetails(ctx, found.MovieResults[0].ID)
	if err != nil {
		return nil, err
	}
	return normalizeTMDBDetails(details), nil
}

// enrichEpisode merges series metadata with the episode title and overview
// from the season payload. A failed season fetch degrades to series-only
// context rather than failing the resolution.
func (r *Resolver) enrichEpisode(ctx context.Context, id media.ID, showID int64, seriesRecord *Normalized) *Normalized {
	record := *seriesRecord
	record.SeriesTitle = seriesRecord.Title
	record.SeasonNumber = id.Season
	record.EpisodeNumber = id.Episode

	season, err := r.tmdb.GetSeasonDetails(ctx, showID, id.Season)
	if err != nil {
		r.logger.Warn("season lookup failed, continuing with series context only",
			logging.String(logging.FieldMediaID, id.String()),
			logging.Error(err))
		return &record
	}
	for _, episode := range season.Episodes {
		if episode.EpisodeNumber == id.Episode {
			record.EpisodeTitle = strings.TrimSpace(episode.Name)
			if overview := strings.TrimSpace(episode.Overview); overview != "" {
				record.Overview = overview
			}
			break
		}
	}
	return &record
}

func (r *Resolver) resolveOMDB(ctx context.Context, id media.ID) (*Normalized, error) {
	if !id.IsEpisode() {
		record, err := r.omdb.GetByID(ctx, id.BaseID())
		if err != nil {
			return nil, err
		}
		return normalizeOMDBRecord(record), nil
	}

	episode, err := r.omdb.GetEpisode(ctx, id.SeriesID, id.Season, id.Episode)
	if err != nil {
		return nil, err
	}
	normalized := normalizeOMDBRecord(episode)
	normalized.EpisodeTitle = normalized.Title
	normalized.SeasonNumber = id.Season
	normalized.EpisodeNumber = id.Episode

	// Series-level context is best-effort on the fallback path.
	if series, err := r.omdb.GetByID(ctx, id.SeriesID); err == nil && series.Found() {
		normalized.SeriesTitle = strings.TrimSpace(series.Title)
		normalized.Title = normalized.SeriesTitle
	} else {
		normalized.SeriesTitle = normalized.Title
	}
	return normalized, nil
}
