// Package streamavail is the streaming-availability provider client. It
// normalizes the provider's per-region option lists into the domain shape;
// region selection and dedup belong to the resolver, not the client.
package streamavail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DavideRizzari/movieverse/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultHost = "streaming-availability.p.rapidapi.com"

	maxResponseBytes = 1024 * 1024
)

type Client struct {
	apiKey  string
	host    string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

type Config struct {
	APIKey string
	Host   string

	// BaseURL overrides the https://<host> target, for tests.
	BaseURL string
	Client  *http.Client

	// RequestsPerSecond caps outbound calls; the metered plan allows only a
	// handful per second.
	RequestsPerSecond float64
}

func NewClient(cfg Config) *Client {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = defaultHost
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://" + host
	}

	httpClient := cfg.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		host:    host,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)),
	}
}

type showResponse struct {
	StreamingOptions map[string][]streamingOption `json:"streamingOptions"`
}

type streamingOption struct {
	Service struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		ImageSet struct {
			LightThemeImage string `json:"lightThemeImage"`
		} `json:"imageSet"`
	} `json:"service"`
	Link string `json:"link"`
}

// AvailabilityFor returns the full region map for a title. A nil map with a
// nil error means the provider has no availability data for it.
func (c *Client) AvailabilityFor(ctx context.Context, imdbID string) (domain.StreamingAvailability, error) {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/shows/"+imdbID, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("streaming availability HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	var response showResponse

	err = json.Unmarshal(body, &response)
	if err != nil {
		return nil, err
	}

	if len(response.StreamingOptions) == 0 {
		return nil, nil
	}

	availability := make(domain.StreamingAvailability, len(response.StreamingOptions))

	for region, options := range response.StreamingOptions {
		offers := make([]domain.StreamingOffer, len(options))
		for i, option := range options {
			offers[i] = domain.StreamingOffer{
				ServiceID:      option.Service.ID,
				ServiceName:    option.Service.Name,
				ServiceLogoURL: option.Service.ImageSet.LightThemeImage,
				DeepLink:       option.Link,
				Region:         region,
			}
		}
		availability[region] = offers
	}

	return availability, nil
}
