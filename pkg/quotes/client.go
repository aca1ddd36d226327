// Package quotes fetches short inspirational quotes from a ZenQuotes-style
// API, falling back to a built-in list when the service is unavailable.
package quotes

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

const defaultQuotesBaseURL = "https://zenquotes.io/api"

// Quote is one quotation with attribution.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// fallbackQuotes is served whenever the remote call fails or times out.
var fallbackQuotes = []Quote{
	{Text: "You don't have to control your thoughts. You just have to stop letting them control you.", Author: "Dan Millman"},
	{Text: "Almost everything will work again if you unplug it for a few minutes, including you.", Author: "Anne Lamott"},
	{Text: "Start where you are. Use what you have. Do what you can.", Author: "Arthur Ashe"},
	{Text: "Nothing diminishes anxiety faster than action.", Author: "Walter Anderson"},
}

// Client calls the quotes API with a short timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a quotes client. An empty baseURL uses the public API.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultQuotesBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 3 * time.Second},
	}
}

// Random returns one quote. It never fails: any error degrades to a random
// entry from the built-in list.
func (c *Client) Random(ctx context.Context) Quote {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/random", nil)
	if err != nil {
		return Fallback()
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Fallback()
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Fallback()
	}
	var payload []struct {
		Q string `json:"q"`
		A string `json:"a"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || len(payload) == 0 {
		return Fallback()
	}
	text := strings.TrimSpace(payload[0].Q)
	if text == "" {
		return Fallback()
	}
	return Quote{Text: text, Author: strings.TrimSpace(payload[0].A)}
}

// Fallback picks a built-in quote.
func Fallback() Quote {
	return fallbackQuotes[rand.Intn(len(fallbackQuotes))]
}
