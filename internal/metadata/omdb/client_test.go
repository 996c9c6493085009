package omdb

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
	client, err := New("test-key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestGetByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("i") != "tt0111161" {
			t.Fatalf("unexpected id %q", query.Get("i"))
		}
		if query.Get("apikey") != "test-key" {
			t.Fatalf("missing api key")
		}
		w.Write([]byte(`{"Title":"The Shawshank Redemption","Year":"1994","Genre":"Drama","Language":"English","Response":"True"}`))
	})

	record, err := client.GetByID(context.Background(), "tt0111161")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if !record.Found() {
		t.Fatal("expected record to be found")
	}
	if record.Title != "The Shawshank Redemption" || record.Year != "1994" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestGetEpisodeSetsSeasonParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("Season") != "1" || query.Get("Episode") != "1" {
			t.Fatalf("expected season/episode params, got %v", query)
		}
		w.Write([]byte(`{"Title":"Pilot","Season":"1","Episode":"1","seriesID":"tt0903747","Response":"True"}`))
	})

	record, err := client.GetEpisode(context.Background(), "tt0903747", 1, 1)
	if err != nil {
		t.Fatalf("GetEpisode returned error: %v", err)
	}
	if record.Title != "Pilot" {
		t.Fatalf("unexpected episode record: %+v", record)
	}
}

func TestGetByIDSurfacesProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Incorrect IMDb ID."}`))
	})
	if _, err := client.GetByID(context.Background(), "bogus"); err == nil {
		t.Fatal("expected error for Response=False payload")
	}
}
