package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"quickreviewer/internal/media"
	"quickreviewer/internal/metadata/omdb"
	"quickreviewer/internal/metadata/tmdb"
)

type fakeTMDB struct {
	find    *tmdb.FindResponse
	findErr error
	movie   *tmdb.Details
	tv      *tmdb.Details
	season  *tmdb.SeasonDetails
	err     error
}

func (f *fakeTMDB) FindByIMDbID(context.Context, string) (*tmdb.FindResponse, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.find, nil
}

func (f *fakeTMDB) GetMovieDetails(context.Context, int64) (*tmdb.Details, error) {
	return f.movie, f.err
}

func (f *fakeTMDB) GetTVDetails(context.Context, int64) (*tmdb.Details, error) {
	return f.tv, f.err
}

func (f *fakeTMDB) GetSeasonDetails(context.Context, int64, int) (*tmdb.SeasonDetails, error) {
	if f.season == nil {
		return nil, errors.New("no season data")
	}
	return f.season, nil
}

type fakeOMDB struct {
	byID    map[string]*omdb.Record
	episode *omdb.Record
	err     error
}

func (f *fakeOMDB) GetByID(_ context.Context, imdbID string) (*omdb.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	record, ok := f.byID[imdbID]
	if !ok {
		return nil, errors.New("not found")
	}
	return record, nil
}

func (f *fakeOMDB) GetEpisode(context.Context, string, int, int) (*omdb.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.episode, nil
}

func movieDetails() *tmdb.Details {
	return &tmdb.Details{
		ID:          278,
		Title:       "The Shawshank Redemption",
		Overview:    "Two imprisoned men bond over a number of years.",
		ReleaseDate: "1994-09-23",
		Genres:      []tmdb.Genre{{ID: 18, Name: "Drama"}},
		SpokenLanguages: []tmdb.SpokenLanguage{
			{ISO639: "en", EnglishName: "English"},
		},
		Credits: tmdb.Credits{
			Crew: []tmdb.CrewMember{{Name: "Frank Darabont", Job: "Director"}},
			Cast: []tmdb.CastMember{{Name: "Tim Robbins"}, {Name: "Morgan Freeman"}},
		},
		Raw: json.RawMessage(`{"id":278}`),
	}
}

func TestResolvePrimaryMovie(t *testing.T) {
	resolver := NewResolver(&fakeTMDB{
		find:  &tmdb.FindResponse{MovieResults: []tmdb.FindResult{{ID: 278}}},
		movie: movieDetails(),
	}, nil, nil)

	id, _ := media.ParseID("tt0111161")
	record, err := resolver.Resolve(context.Background(), id, media.TypeMovie)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if record.Source != SourceTMDB {
		t.Fatalf("expected tmdb source, got %s", record.Source)
	}
	if record.Title != "The Shawshank Redemption" || record.Year != "1994" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.Director != "Frank Darabont" {
		t.Fatalf("unexpected director %q", record.Director)
	}
	if len(record.Languages) != 1 || record.Languages[0] != "English" {
		t.Fatalf("unexpected languages %v", record.Languages)
	}
	if record.IsEpisode() {
		t.Fatal("movie record should not be an episode")
	}
}

func TestResolveEpisodeMergesSeriesInfo(t *testing.T) {
	resolver := NewResolver(&fakeTMDB{
		find: &tmdb.FindResponse{TVResults: []tmdb.FindResult{{ID: 1396}}},
		tv: &tmdb.Details{
			Name:             "Breaking Bad",
			FirstAirDate:     "2008-01-20",
			OriginalLanguage: "en",
			Overview:         "A chemistry teacher turns to crime.",
		},
		season: &tmdb.SeasonDetails{
			SeasonNumber: 1,
			Episodes: []tmdb.Episode{
				{Name: "Pilot", EpisodeNumber: 1, Overview: "Walter White learns he has cancer."},
			},
		},
	}, nil, nil)

	id, _ := media.ParseID("tt0903747:S1:E1")
	record, err := resolver.Resolve(context.Background(), id, media.TypeSeries)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if record.SeriesTitle != "Breaking Bad" {
		t.Fatalf("unexpected series title %q", record.SeriesTitle)
	}
	if record.EpisodeTitle != "Pilot" {
		t.Fatalf("unexpected episode title %q", record.EpisodeTitle)
	}
	if record.SeasonNumber != 1 || record.EpisodeNumber != 1 {
		t.Fatalf("unexpected numbering: %+v", record)
	}
	if record.Overview != "Walter White learns he has cancer." {
		t.Fatalf("expected episode overview to win, got %q", record.Overview)
	}
	if record.Languages[0] != "English" {
		t.Fatalf("expected original_language expansion, got %v", record.Languages)
	}
}

func TestResolveFallsBackToOMDB(t *testing.T) {
	resolver := NewResolver(
		&fakeTMDB{findErr: errors.New("tmdb down")},
		&fakeOMDB{byID: map[string]*omdb.Record{
			"tt0111161": {
				Title:    "The Shawshank Redemption",
				Year:     "1994",
				Genre:    "Drama",
				Language: "English",
				Plot:     "Hope is a good thing.",
				Response: "True",
			},
		}},
		nil,
	)

	id, _ := media.ParseID("tt0111161")
	record, err := resolver.Resolve(context.Background(), id, media.TypeMovie)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if record.Source != SourceOMDB {
		t.Fatalf("expected omdb source, got %s", record.Source)
	}
	if record.Languages[0] != "English" {
		t.Fatalf("unexpected languages %v", record.Languages)
	}
}

func TestResolveBothProvidersFail(t *testing.T) {
	resolver := NewResolver(
		&fakeTMDB{findErr: errors.New("tmdb down")},
		&fakeOMDB{err: errors.New("omdb down")},
		nil,
	)

	id, _ := media.ParseID("tt0111161")
	if _, err := resolver.Resolve(context.Background(), id, media.TypeMovie); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestLanguageName(t *testing.T) {
	if got := LanguageName("en"); got != "English" {
		t.Fatalf("LanguageName(en) = %q", got)
	}
	if got := LanguageName("!!"); got != "!!" {
		t.Fatalf("unparseable code should pass through, got %q", got)
	}
	if got := LanguageName(""); got != "" {
		t.Fatalf("empty code should stay empty, got %q", got)
	}
}
