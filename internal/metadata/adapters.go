package metadata

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"quickreviewer/internal/metadata/omdb"
	"quickreviewer/internal/metadata/tmdb"
)

// normalizeTMDBDetails maps a TMDB detail payload into the provider-agnostic
// record. Only the adapter knows TMDB field names.
func normalizeTMDBDetails(details *tmdb.Details) *Normalized {
	title := strings.TrimSpace(details.Title)
	if title == "" {
		title = strings.TrimSpace(details.Name)
	}
	year := yearFromDate(details.ReleaseDate)
	if year == "" {
		year = yearFromDate(details.FirstAirDate)
	}

	genres := make([]string, 0, len(details.Genres))
	for _, genre := range details.Genres {
		if name := strings.TrimSpace(genre.Name); name != "" {
			genres = append(genres, name)
		}
	}

	languages := make([]string, 0, len(details.SpokenLanguages)+1)
	for _, lang := range details.SpokenLanguages {
		name := strings.TrimSpace(lang.EnglishName)
		if name == "" {
			name = LanguageName(lang.ISO639)
		}
		languages = appendDistinct(languages, name)
	}
	if len(languages) == 0 {
		languages = appendDistinct(languages, LanguageName(details.OriginalLanguage))
	}

	var director string
	for _, crew := range details.Credits.Crew {
		if strings.EqualFold(crew.Job, "Director") {
			director = strings.TrimSpace(crew.Name)
			break
		}
	}

	cast := make([]string, 0, 5)
	for _, member := range details.Credits.Cast {
		if len(cast) == 5 {
			break
		}
		if name := strings.TrimSpace(member.Name); name != "" {
			cast = append(cast, name)
		}
	}

	return &Normalized{
		Source:    SourceTMDB,
		Title:     title,
		Year:      year,
		Overview:  strings.TrimSpace(details.Overview),
		Genres:    genres,
		Director:  director,
		Cast:      cast,
		Languages: languages,
		Raw:       details.Raw,
	}
}

// normalizeOMDBRecord maps the flat OMDb shape into the provider-agnostic
// record. OMDb reports languages and lists as comma-joined display names.
func normalizeOMDBRecord(record *omdb.Record) *Normalized {
	return &Normalized{
		Source:    SourceOMDB,
		Title:     strings.TrimSpace(record.Title),
		Year:      strings.TrimSpace(record.Year),
		Overview:  strings.TrimSpace(record.Plot),
		Genres:    splitList(record.Genre),
		Director:  strings.TrimSpace(record.Director),
		Cast:      splitList(record.Actors),
		Languages: splitList(record.Language),
		Raw:       record.Raw,
	}
}

// LanguageName expands an ISO 639-1 code into its English display name.
// Unknown codes are returned as given.
func LanguageName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}

func yearFromDate(date string) string {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" || strings.EqualFold(value, "N/A") {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = appendDistinct(out, strings.TrimSpace(part))
	}
	return out
}

func appendDistinct(values []string, value string) []string {
	if value == "" {
		return values
	}
	for _, existing := range values {
		if strings.EqualFold(existing, value) {
			return values
		}
	}
	return append(values, value)
}
