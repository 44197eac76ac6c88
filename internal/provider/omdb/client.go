// Package omdb is the fallback search provider client. Its results are keyed
// by the canonical identifier already, so they need no mapping step.
package omdb

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
)

const (
	defaultBaseURL = "https://www.omdbapi.com"

	maxResponseBytes = 512 * 1024
)

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

type Config struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
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

	return &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type searchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// envelope is OMDb's response wrapper: Response is the string "True" or
// "False", with Error set on the latter.
type envelope struct {
	Search   []searchItem `json:"Search"`
	Response string       `json:"Response"`
	Error    string       `json:"Error"`

	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type"`
}

// SearchByTitle returns summaries for the query, or an empty slice when the
// provider reports no matches. Only transport and decode problems are errors.
func (c *Client) SearchByTitle(ctx context.Context, query, year string) ([]domain.MovieSummary, error) {
	params := url.Values{
		"apikey": {c.apiKey},
		"s":      {strings.TrimSpace(query)},
	}
	if year != "" {
		params.Set("y", year)
	}

	var response envelope

	err := c.get(ctx, params, &response)
	if err != nil {
		return nil, err
	}

	if response.Response != "True" {
		return nil, nil
	}

	summaries := make([]domain.MovieSummary, len(response.Search))
	for i, item := range response.Search {
		summaries[i] = domain.MovieSummary{
			Title:     item.Title,
			Year:      item.Year,
			ImdbID:    item.ImdbID,
			Kind:      item.Type,
			PosterURL: item.Poster,
		}
	}

	return summaries, nil
}

func (c *Client) DetailsByID(ctx context.Context, imdbID string) (*domain.MovieDetails, error) {
	params := url.Values{
		"apikey": {c.apiKey},
		"i":      {imdbID},
		"plot":   {"full"},
	}

	var response envelope

	err := c.get(ctx, params, &response)
	if err != nil {
		return nil, err
	}

	if response.Response != "True" {
		return nil, domain.ErrRecordNotFound
	}

	return &domain.MovieDetails{
		Title:      response.Title,
		Year:       response.Year,
		Rated:      response.Rated,
		Released:   response.Released,
		Runtime:    response.Runtime,
		Genre:      response.Genre,
		Director:   response.Director,
		Actors:     response.Actors,
		Plot:       response.Plot,
		PosterURL:  response.Poster,
		ImdbRating: response.ImdbRating,
		ImdbID:     response.ImdbID,
		Kind:       response.Type,
	}, nil
}

func (c *Client) get(ctx context.Context, params url.Values, dst *envelope) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
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
		return fmt.Errorf("omdb HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return err
	}

	return json.Unmarshal(body, dst)
}
