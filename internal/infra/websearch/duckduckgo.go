package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var ErrDisabled = errors.New("Web search is disabled")

const noResult = "No relevant information found."

type Result struct {
	Query  string `json:"query"`
	Text   string `json:"result"`
	Source string `json:"source"`
}

type instantAnswer struct {
	Abstract     string `json:"Abstract"`
	AbstractText string `json:"AbstractText"`
	Answer       string `json:"Answer"`
	Definition   string `json:"Definition"`
}

// DuckDuckGo queries the Instant Answer API.
type DuckDuckGo struct {
	enabled bool
	baseURL string
	client  *http.Client
}

func NewDuckDuckGo(enabled bool, baseURL string) *DuckDuckGo {
	return &DuckDuckGo{
		enabled: enabled,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (d *DuckDuckGo) Search(ctx context.Context, query string) (*Result, error) {
	if !d.enabled {
		return nil, ErrDisabled
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("Web search error: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Web search error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Web search error: status %d", resp.StatusCode)
	}

	var ia instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&ia); err != nil {
		return nil, fmt.Errorf("Error performing web search: %w", err)
	}

	return &Result{
		Query:  query,
		Text:   pick(ia.Answer, ia.AbstractText, ia.Definition, ia.Abstract),
		Source: "DuckDuckGo",
	}, nil
}

func pick(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return noResult
}
