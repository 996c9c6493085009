package review

import (
	"log/slog"

	"quickreviewer/internal/logging"
	"quickreviewer/internal/media"
)

// Verifier decides whether raw generated text matches the structural
// contract for the requested media type. The check is purely structural.
type Verifier struct {
	logger *slog.Logger
}

// NewVerifier constructs a verifier. A nil logger disables diagnostics.
func NewVerifier(logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Verifier{logger: logger}
}

// IsValid reports whether the text carries the discriminator marker for the
// requested type and none of the opposite type. Both-present and both-absent
// combinations are invalid.
func (v *Verifier) IsValid(rawText string, mediaType media.Type) bool {
	hasMovie := containsMarker(rawText, MarkerMovie)
	hasSeries := containsMarker(rawText, MarkerSeries) || containsMarker(rawText, MarkerEpisode)

	var valid bool
	switch mediaType {
	case media.TypeMovie:
		valid = hasMovie && !hasSeries
	case media.TypeSeries:
		valid = hasSeries && !hasMovie
	default:
		valid = false
	}
	if !valid {
		v.logger.Debug("structural verification failed",
			logging.String(logging.FieldMediaType, string(mediaType)),
			logging.Bool("movie_marker", hasMovie),
			logging.Bool("series_marker", hasSeries))
	}
	return valid
}
