package apod

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://api.nasa.gov/planetary/apod"

// Client fetches the astronomy picture of the day. An empty API key means
// the feature is disabled, which is a normal state rather than an error;
// callers check Enabled before use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Picture struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	MediaType   string `json:"media_type"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl"`
	Copyright   string `json:"copyright"`
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apod error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Get fetches the picture for one date (YYYY-MM-DD); empty means today per
// the feed.
func (c *Client) Get(ctx context.Context, date string) (*Picture, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("apod feed disabled (no api key)")
	}
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	if strings.TrimSpace(date) != "" {
		query.Set("date", strings.TrimSpace(date))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	var pic Picture
	if err := json.Unmarshal(body, &pic); err != nil {
		return nil, fmt.Errorf("decode apod response: %w", err)
	}
	return &pic, nil
}
