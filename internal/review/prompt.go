package review

import (
	"fmt"
	"strings"

	"quickreviewer/internal/media"
	"quickreviewer/internal/metadata"
)

// Prompt is a composed system/user prompt pair for the generation backend.
type Prompt struct {
	System string
	User   string
}

// ComposeReviewPrompt builds the generation prompt for a full review from
// resolved metadata. The same prompt is reused for every attempt of a
// request; only the generation output varies between attempts.
func ComposeReviewPrompt(meta *metadata.Normalized, mediaType media.Type) Prompt {
	var nameSections string
	if mediaType == media.TypeSeries {
		nameSections = `"Name of the Series", "Name of the Episode"`
	} else {
		nameSections = `"Name of the Movie"`
	}

	system := fmt.Sprintf(`You are a film and television critic writing spoiler-free reviews.
Write the review as plain markdown using exactly these section headers, each on its own line, in this order:
%s, "Release Date", "Genre", "Language", "Director", "Cast", "Plot Summary", "Direction", "Performances", "Music & Sound", "Cinematography", "Strengths", "Weaknesses", "Audience Appeal", "Overall Verdict", "Rating", "Verdict in One Line".
Format each header as **Header:** followed by its content.
Never reveal plot twists, endings, or late-story developments. The "Rating" section is a score out of 10. "Verdict in One Line" is a single short sentence.`, nameSections)

	return Prompt{System: system, User: describeSubject(meta, mediaType)}
}

// ComposeSummaryPrompt builds the prompt for the secondary summary pass.
func ComposeSummaryPrompt(meta *metadata.Normalized, mediaType media.Type) Prompt {
	system := `You are a film and television critic. Produce a spoiler-free summary as a markdown bullet list of exactly 8 short, distinct points. Each point must be a single line under 120 characters. Do not add headers or prose around the list.`
	return Prompt{System: system, User: describeSubject(meta, mediaType)}
}

func describeSubject(meta *metadata.Normalized, mediaType media.Type) string {
	var b strings.Builder
	if meta.IsEpisode() {
		fmt.Fprintf(&b, "Review episode %d of season %d of the series %q.\n", meta.EpisodeNumber, meta.SeasonNumber, meta.SeriesTitle)
		if meta.EpisodeTitle != "" {
			fmt.Fprintf(&b, "Episode title: %s\n", meta.EpisodeTitle)
		}
	} else if mediaType == media.TypeSeries {
		fmt.Fprintf(&b, "Review the series %q.\n", meta.Title)
	} else {
		fmt.Fprintf(&b, "Review the movie %q.\n", meta.Title)
	}

	writeFact := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	writeFact("Year", meta.Year)
	writeFact("Genre", strings.Join(meta.Genres, ", "))
	writeFact("Language", strings.Join(meta.Languages, ", "))
	writeFact("Director", meta.Director)
	writeFact("Cast", strings.Join(meta.Cast, ", "))
	writeFact("Overview", meta.Overview)
	return strings.TrimSpace(b.String())
}
