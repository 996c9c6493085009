package review

import (
	"strings"
	"testing"

	"quickreviewer/internal/media"
	"quickreviewer/internal/metadata"
)

func TestComposeReviewPromptMovie(t *testing.T) {
	meta := &metadata.Normalized{
		Title:     "The Example",
		Year:      "1999",
		Genres:    []string{"Drama"},
		Languages: []string{"English"},
		Director:  "J. Doe",
		Cast:      []string{"A", "B"},
		Overview:  "A story.",
	}
	prompt := ComposeReviewPrompt(meta, media.TypeMovie)
	if !strings.Contains(prompt.System, `"Name of the Movie"`) {
		t.Fatalf("movie prompt should request the movie marker: %s", prompt.System)
	}
	if strings.Contains(prompt.System, `"Name of the Series"`) {
		t.Fatal("movie prompt must not request series markers")
	}
	for _, want := range []string{`"The Example"`, "Year: 1999", "Director: J. Doe", "Language: English"} {
		if !strings.Contains(prompt.User, want) {
			t.Fatalf("user prompt missing %q:\n%s", want, prompt.User)
		}
	}
}

func TestComposeReviewPromptEpisodeIncludesSeriesContext(t *testing.T) {
	meta := &metadata.Normalized{
		SeriesTitle:   "Breaking Bad",
		EpisodeTitle:  "Pilot",
		SeasonNumber:  1,
		EpisodeNumber: 1,
		Overview:      "Setup.",
	}
	prompt := ComposeReviewPrompt(meta, media.TypeSeries)
	if !strings.Contains(prompt.System, `"Name of the Series"`) || !strings.Contains(prompt.System, `"Name of the Episode"`) {
		t.Fatalf("episode prompt should request series markers: %s", prompt.System)
	}
	if !strings.Contains(prompt.User, `"Breaking Bad"`) {
		t.Fatalf("user prompt missing series title:\n%s", prompt.User)
	}
	if !strings.Contains(prompt.User, "episode 1 of season 1") {
		t.Fatalf("user prompt missing episode numbering:\n%s", prompt.User)
	}
	if !strings.Contains(prompt.User, "Episode title: Pilot") {
		t.Fatalf("user prompt missing episode title:\n%s", prompt.User)
	}
}

func TestComposeReviewPromptOmitsEmptyFacts(t *testing.T) {
	prompt := ComposeReviewPrompt(&metadata.Normalized{Title: "Bare"}, media.TypeMovie)
	for _, banned := range []string{"Year:", "Genre:", "Director:", "Cast:", "Overview:"} {
		if strings.Contains(prompt.User, banned) {
			t.Fatalf("empty fact %q should be omitted:\n%s", banned, prompt.User)
		}
	}
}
