// Package rates fetches USD-pivoted exchange rates and keeps the converter's
// table fresh on a fixed interval.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultURL is the public feed the application ships with. The response
// carries rates as units of each currency per one USD.
const DefaultURL = "https://api.exchangerate-api.com/v4/latest/USD"

// Client fetches the current rate table over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type feedResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Fetch retrieves the rate table. An empty table is an error; callers keep
// their previous rates on any failure.
func (c *Client) Fetch(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("rates feed returned status %d", resp.StatusCode)
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding rates response: %w", err)
	}
	if len(feed.Rates) == 0 {
		return nil, fmt.Errorf("rates feed returned no rates")
	}
	return feed.Rates, nil
}
