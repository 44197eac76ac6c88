// Package translate is a best-effort query translation helper. Translation
// failures must never break a search, so Translate always returns usable
// text: the translation when one is available, the input otherwise.
package translate

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.mymemory.translated.net"

	maxResponseBytes = 64 * 1024
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

type Config struct {
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 3 * time.Second}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

type translateResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// Translate returns text translated to English, or text unchanged on any
// failure. Inputs too short to carry meaning are passed through without a
// network call.
func (c *Client) Translate(ctx context.Context, text string) string {
	if len(text) < 2 {
		return text
	}

	params := url.Values{
		"q":        {text},
		"langpair": {"Autodetect|en"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get?"+params.Encode(), nil)
	if err != nil {
		return text
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("translation failed, using original query", "error", err)
		return text
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("translation failed, using original query", "status", resp.StatusCode)
		return text
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return text
	}

	var response translateResponse

	err = json.Unmarshal(body, &response)
	if err != nil || response.ResponseData.TranslatedText == "" {
		return text
	}

	return response.ResponseData.TranslatedText
}
