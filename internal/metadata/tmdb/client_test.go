package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New("test-key", server.URL, "en-US")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestFindByIMDbID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/find/tt0111161" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("external_source") != "imdb_id" {
			t.Fatalf("missing external_source parameter")
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Fatalf("missing api key")
		}
		w.Write([]byte(`{"movie_results":[{"id":278,"title":"The Shawshank Redemption","release_date":"1994-09-23"}],"tv_results":[]}`))
	})

	resp, err := client.FindByIMDbID(context.Background(), "tt0111161")
	if err != nil {
		t.Fatalf("FindByIMDbID returned error: %v", err)
	}
	if len(resp.MovieResults) != 1 || resp.MovieResults[0].ID != 278 {
		t.Fatalf("unexpected find payload: %+v", resp)
	}
}

func TestGetMovieDetailsKeepsRawBody(t *testing.T) {
	raw := `{"id":278,"title":"The Shawshank Redemption","genres":[{"id":18,"name":"Drama"}],"spoken_languages":[{"iso_639_1":"en","english_name":"English"}],"credits":{"crew":[{"name":"Frank Darabont","job":"Director"}],"cast":[{"name":"Tim Robbins","order":0}]}}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/278" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("append_to_response") != "credits" {
			t.Fatalf("expected credits append, got %q", r.URL.Query().Get("append_to_response"))
		}
		w.Write([]byte(raw))
	})

	details, err := client.GetMovieDetails(context.Background(), 278)
	if err != nil {
		t.Fatalf("GetMovieDetails returned error: %v", err)
	}
	if details.Title != "The Shawshank Redemption" {
		t.Fatalf("unexpected title %q", details.Title)
	}
	if len(details.Genres) != 1 || details.Genres[0].Name != "Drama" {
		t.Fatalf("unexpected genres: %+v", details.Genres)
	}
	if details.Credits.Crew[0].Job != "Director" {
		t.Fatalf("unexpected crew: %+v", details.Credits.Crew)
	}
	if string(details.Raw) != raw {
		t.Fatalf("expected raw body to be preserved")
	}
}

func TestGetSeasonDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/1396/season/1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":3572,"season_number":1,"episodes":[{"name":"Pilot","season_number":1,"episode_number":1}]}`))
	})

	season, err := client.GetSeasonDetails(context.Background(), 1396, 1)
	if err != nil {
		t.Fatalf("GetSeasonDetails returned error: %v", err)
	}
	if len(season.Episodes) != 1 || season.Episodes[0].Name != "Pilot" {
		t.Fatalf("unexpected season payload: %+v", season)
	}
}

func TestStatusErrorsSurface(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if _, err := client.FindByIMDbID(context.Background(), "tt0000000"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
