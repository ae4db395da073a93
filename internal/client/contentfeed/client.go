package contentfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client reads pre-generated daily horoscope rows from the upstream content
// API. Read-only; the generation pipeline owns the write side.
type Client struct {
	host       string
	apiKey     string
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content feed error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host, apiKey string) *Client {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	return &Client{
		host:       host,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Row is one upstream content record. Field names follow the feed's JSON.
type Row struct {
	ID                string `json:"id"`
	Sign              string `json:"sign"`
	Hemisphere        string `json:"hemisphere"`
	Date              string `json:"date"`
	DailyText         string `json:"daily_text"`
	AffirmationText   string `json:"affirmation_text"`
	DeeperInsightText string `json:"deeper_insight_text"`
	UpdatedAt         string `json:"updated_at"`
}

// ListDaily fetches every row for one (date, hemisphere) pair.
func (c *Client) ListDaily(ctx context.Context, date, hemisphere string) ([]Row, error) {
	if c == nil || c.host == "" {
		return nil, fmt.Errorf("content feed not configured")
	}
	query := url.Values{}
	query.Set("date", date)
	query.Set("hemisphere", hemisphere)
	body, err := c.doRequest(ctx, "/v1/daily", query)
	if err != nil {
		return nil, err
	}
	var rows []Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode daily rows: %w", err)
	}
	return rows, nil
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
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
	return body, nil
}
