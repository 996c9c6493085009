package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Record models the flat OMDb payload for a title or episode.
type Record struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	SeriesID   string `json:"seriesID"`
	Season     string `json:"Season"`
	EpisodeNum string `json:"Episode"`
	TypeField  string `json:"Type"`
	Response   string `json:"Response"`
	ErrorField string `json:"Error"`

	// Raw is the unmodified response body.
	Raw json.RawMessage `json:"-"`
}

// Found reports whether OMDb returned a usable record.
func (r *Record) Found() bool {
	return r != nil && strings.EqualFold(r.Response, "True") && strings.TrimSpace(r.Title) != ""
}

// Lookup defines the OMDb operations used by the metadata resolver.
type Lookup interface {
	GetByID(ctx context.Context, imdbID string) (*Record, error)
	GetEpisode(ctx context.Context, seriesID string, season, episode int) (*Record, error)
}

// Client provides access to the OMDb API.
type Client struct {
	apiKey     string
	baseURL    string
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

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	if baseURL == "" {
		return nil, errors.New("omdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// GetByID fetches a movie or series record by IMDb id.
func (c *Client) GetByID(ctx context.Context, imdbID string) (*Record, error) {
	if strings.TrimSpace(imdbID) == "" {
		return nil, errors.New("imdb id must not be empty")
	}
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "full")
	return c.get(ctx, params)
}

// GetEpisode fetches a single-episode record for a series.
func (c *Client) GetEpisode(ctx context.Context, seriesID string, season, episode int) (*Record, error) {
	if strings.TrimSpace(seriesID) == "" {
		return nil, errors.New("series id must not be empty")
	}
	if season <= 0 || episode <= 0 {
		return nil, errors.New("season and episode must be positive")
	}
	params := url.Values{}
	params.Set("i", seriesID)
	params.Set("Season", strconv.Itoa(season))
	params.Set("Episode", strconv.Itoa(episode))
	params.Set("plot", "full")
	return c.get(ctx, params)
}

func (c *Client) get(ctx context.Context, params url.Values) (*Record, error) {
	endpoint, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return nil, fmt.Errorf("parse omdb url: %w", err)
	}
	params.Set("apikey", c.apiKey)
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
		return nil, fmt.Errorf("omdb returned %d (latency=%v)", resp.StatusCode, latency)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read omdb response: %w", err)
	}

	var payload Record
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode omdb response: %w", err)
	}
	if !strings.EqualFold(payload.Response, "True") {
		message := strings.TrimSpace(payload.ErrorField)
		if message == "" {
			message = "no record"
		}
		return nil, fmt.Errorf("omdb lookup failed: %s", message)
	}
	payload.Raw = json.RawMessage(body)
	return &payload, nil
}
