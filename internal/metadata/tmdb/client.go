package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// FindResult is a single match from the TMDB external-id lookup.
type FindResult struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Name             string   `json:"name"`
	Overview         string   `json:"overview"`
	ReleaseDate      string   `json:"release_date"`
	FirstAirDate     string   `json:"first_air_date"`
	OriginalLanguage string   `json:"original_language"`
	GenreIDs         []int64  `json:"genre_ids"`
	MediaType        string   `json:"media_type"`
	Popularity       float64  `json:"popularity"`
	VoteAverage      float64  `json:"vote_average"`
	OriginCountry    []string `json:"origin_country"`
}

// FindResponse models the TMDB /find payload.
type FindResponse struct {
	MovieResults []FindResult `json:"movie_results"`
	TVResults    []FindResult `json:"tv_results"`
}

// Genre is a TMDB genre entry.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SpokenLanguage is a TMDB language entry on detail payloads.
type SpokenLanguage struct {
	ISO639      string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

// CastMember is a credited performer.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// CrewMember is a credited crew entry.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credits holds the credits sub-payload requested via append_to_response.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Details captures the movie/TV detail payload fields the resolver consumes.
type Details struct {
	ID               int64            `json:"id"`
	Title            string           `json:"title"`
	Name             string           `json:"name"`
	Overview         string           `json:"overview"`
	ReleaseDate      string           `json:"release_date"`
	FirstAirDate     string           `json:"first_air_date"`
	OriginalLanguage string           `json:"original_language"`
	Genres           []Genre          `json:"genres"`
	SpokenLanguages  []SpokenLanguage `json:"spoken_languages"`
	Credits          Credits          `json:"credits"`

	// Raw is the unmodified response body.
	Raw json.RawMessage `json:"-"`
}

// Episode describes a single TMDB episode entry.
type Episode struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	AirDate       string `json:"air_date"`
}

// SeasonDetails captures the full TMDB season payload (episodes included).
type SeasonDetails struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	SeasonNumber int       `json:"season_number"`
	Episodes     []Episode `json:"episodes"`
}

// Lookup defines the TMDB operations used by the metadata resolver.
type Lookup interface {
	FindByIMDbID(ctx context.Context, imdbID string) (*FindResponse, error)
	GetMovieDetails(ctx context.Context, movieID int64) (*Details, error)
	GetTVDetails(ctx context.Context, showID int64) (*Details, error)
	GetSeasonDetails(ctx context.Context, showID int64, seasonNumber int) (*SeasonDetails, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Lookup = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		language:   language,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FindByIMDbID resolves an IMDb id to TMDB movie/TV matches.
func (c *Client) FindByIMDbID(ctx context.Context, imdbID string) (*FindResponse, error) {
	if imdbID == "" {
		return nil, errors.New("imdb id must not be empty")
	}
	params := url.Values{}
	params.Set("external_source", "imdb_id")
	body, err := c.get(ctx, "/find/"+url.PathEscape(imdbID), params)
	if err != nil {
		return nil, err
	}
	var payload FindResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode tmdb find response: %w", err)
	}
	return &payload, nil
}

// GetMovieDetails fetches movie details (credits included) by TMDB id.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int64) (*Details, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	params := url.Values{}
	params.Set("append_to_response", "credits")
	body, err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), params)
	if err != nil {
		return nil, err
	}
	return decodeDetails(body)
}

// GetTVDetails fetches TV show details (credits included) by TMDB id.
func (c *Client) GetTVDetails(ctx context.Context, showID int64) (*Details, error) {
	if showID <= 0 {
		return nil, errors.New("show id must be positive")
	}
	params := url.Values{}
	params.Set("append_to_response", "credits")
	body, err := c.get(ctx, fmt.Sprintf("/tv/%d", showID), params)
	if err != nil {
		return nil, err
	}
	return decodeDetails(body)
}

// GetSeasonDetails fetches season metadata, including episode titles.
func (c *Client) GetSeasonDetails(ctx context.Context, showID int64, seasonNumber int) (*SeasonDetails, error) {
	if showID <= 0 {
		return nil, errors.New("show id must be positive")
	}
	if seasonNumber <= 0 {
		return nil, errors.New("season number must be positive")
	}
	body, err := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", showID, seasonNumber), nil)
	if err != nil {
		return nil, err
	}
	var payload SeasonDetails
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode season response: %w", err)
	}
	return &payload, nil
}

func decodeDetails(body []byte) (*Details, error) {
	var payload Details
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode tmdb details: %w", err)
	}
	payload.Raw = json.RawMessage(body)
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb %s returned %d (latency=%v)", path, resp.StatusCode, latency)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tmdb response: %w", err)
	}
	return body, nil
}
