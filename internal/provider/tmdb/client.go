// Package tmdb is the primary metadata provider client: title search,
// daily trending and the mapping from TMDB ids to canonical identifiers.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DavideRizzari/movieverse/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	posterBaseURL  = "https://image.tmdb.org/t/p/w500"

	maxResponseBytes = 512 * 1024
)

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

type Config struct {
	APIKey  string
	BaseURL string
	Client  *http.Client

	// RequestsPerSecond caps outbound calls; TMDB enforces roughly 50 rps
	// per key, and the identifier sub-lookups fan out.
	RequestsPerSecond float64
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 20
	}

	return &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)),
	}
}

// Enabled reports whether an API key is configured. A disabled client makes
// the primary search and trending paths unavailable, not broken.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type searchItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}

type searchResponse struct {
	Results []searchItem `json:"results"`
}

type externalIDsResponse struct {
	ImdbID string `json:"imdb_id"`
}

func (c *Client) SearchByTitle(ctx context.Context, query, language string) ([]domain.ProviderTitle, error) {
	params := url.Values{
		"api_key":       {c.apiKey},
		"query":         {strings.TrimSpace(query)},
		"language":      {language},
		"include_adult": {"false"},
	}

	var response searchResponse

	err := c.get(ctx, "/search/movie?"+params.Encode(), &response)
	if err != nil {
		return nil, err
	}

	return toProviderTitles(response.Results), nil
}

func (c *Client) TrendingDaily(ctx context.Context, language string) ([]domain.ProviderTitle, error) {
	params := url.Values{
		"api_key":  {c.apiKey},
		"language": {language},
	}

	var response searchResponse

	err := c.get(ctx, "/trending/movie/day?"+params.Encode(), &response)
	if err != nil {
		return nil, err
	}

	return toProviderTitles(response.Results), nil
}

// ExternalIDFor returns the canonical identifier for a TMDB title id, or ""
// when the title has none.
func (c *Client) ExternalIDFor(ctx context.Context, titleID int) (string, error) {
	params := url.Values{
		"api_key": {c.apiKey},
	}

	var response externalIDsResponse

	err := c.get(ctx, fmt.Sprintf("/movie/%d/external_ids?%s", titleID, params.Encode()), &response)
	if err != nil {
		return "", err
	}

	return response.ImdbID, nil
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("tmdb HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return err
	}

	return json.Unmarshal(body, dst)
}

func toProviderTitles(items []searchItem) []domain.ProviderTitle {
	titles := make([]domain.ProviderTitle, len(items))

	for i, item := range items {
		year := domain.FieldUnavailable
		if len(item.ReleaseDate) >= 4 {
			year = item.ReleaseDate[:4]
		}

		poster := domain.FieldUnavailable
		if item.PosterPath != "" {
			poster = posterBaseURL + item.PosterPath
		}

		titles[i] = domain.ProviderTitle{
			ID:        item.ID,
			Title:     item.Title,
			Year:      year,
			PosterURL: poster,
		}
	}

	return titles
}
