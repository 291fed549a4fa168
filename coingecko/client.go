package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/status-im/fiatprices/config"
	"github.com/status-im/fiatprices/interfaces"
)

// Request timeout; the source answers small payloads quickly or not at all
const REQUEST_TIMEOUT = 5 * time.Second

// StatusHandler receives the outcome of every source request
type StatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
}

// Client implements interfaces.PriceSource against the CoinGecko API.
// Requests are single attempts with a short timeout; retry and skip
// policy belongs to the caller.
type Client struct {
	config        *config.Config
	httpClient    *http.Client
	statusHandler StatusHandler
}

// NewClient creates a new CoinGecko API client
func NewClient(cfg *config.Config, handler StatusHandler) *Client {
	return &Client{
		config:        cfg,
		httpClient:    &http.Client{Timeout: REQUEST_TIMEOUT},
		statusHandler: handler,
	}
}

// CurrentPrices fetches the raw current price payload for the given
// markets and currencies
func (c *Client) CurrentPrices(ctx context.Context, markets, currencies []string) ([]byte, error) {
	req, err := NewCurrentRequestBuilder(c.apiBaseURL()).
		WithMarkets(markets).
		WithCurrencies(currencies).
		WithApiKey(c.apiKey(), c.isUsingDemoKey()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	body, err := c.execute(ctx, req)
	if err != nil {
		return nil, err
	}

	// Validate that the payload is a JSON object before handing it out
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("malformed current prices payload: %w", err)
	}

	return body, nil
}

// HistoricalPrices fetches and normalizes prices for one market on one
// calendar day. A payload without market data means the source has no
// record for that day and is reported as an error.
func (c *Client) HistoricalPrices(ctx context.Context, market string, day time.Time, currencies []string) (interfaces.Prices, error) {
	req, err := NewHistoryRequestBuilder(c.apiBaseURL(), market).
		WithDay(day).
		WithoutLocalization().
		WithApiKey(c.apiKey(), c.isUsingDemoKey()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	body, err := c.execute(ctx, req)
	if err != nil {
		return nil, err
	}

	var history HistoryResponse
	if err := json.Unmarshal(body, &history); err != nil {
		return nil, fmt.Errorf("malformed history payload for %s: %w", market, err)
	}

	if history.MarketData == nil || history.MarketData.CurrentPrice == nil {
		return nil, fmt.Errorf("no market data for %s on %s", market, day.UTC().Format("2006-01-02"))
	}

	return NormalizePrices(history.MarketData.CurrentPrice, currencies), nil
}

// execute performs a single request attempt and returns the response body
func (c *Client) execute(ctx context.Context, req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		c.recordStatus("error")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusTooManyRequests {
			c.recordStatus("rate_limited")
			return nil, fmt.Errorf("rate limit exceeded (status %d): %s", resp.StatusCode, string(body))
		}
		c.recordStatus("error")
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordStatus("error")
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	c.recordStatus("success")
	return body, nil
}

func (c *Client) recordStatus(status string) {
	if c.statusHandler != nil {
		c.statusHandler.OnRequest(status)
	}
}

// APIBaseURL resolves the base URL requests hit for the given
// configuration: the test override, the pro host when a paid key is
// configured, otherwise the public host. Exported so cache keys can be
// derived from the same URL the client actually requests.
func APIBaseURL(cfg *config.Config) string {
	if cfg.OverrideCoingeckoURL != "" {
		return cfg.OverrideCoingeckoURL
	}
	if key := primaryAPIKey(cfg); key != "" && !isDemoKey(key) {
		return COINGECKO_PRO_URL
	}
	return COINGECKO_PUBLIC_URL
}

func primaryAPIKey(cfg *config.Config) string {
	if cfg.APITokens == nil || len(cfg.APITokens.Tokens) == 0 {
		return ""
	}
	return cfg.APITokens.Tokens[0]
}

// Determines if the API key is a demo key
func isDemoKey(key string) bool {
	if key == "" {
		return false
	}
	if strings.HasPrefix(key, "CG-") || strings.HasPrefix(key, "demo_") {
		return true
	}
	if strings.Contains(strings.ToLower(key), "demo") {
		log.Printf("CoinGecko: treating key as demo key")
		return true
	}
	return false
}

func (c *Client) apiBaseURL() string {
	return APIBaseURL(c.config)
}

func (c *Client) apiKey() string {
	return primaryAPIKey(c.config)
}

func (c *Client) isUsingDemoKey() bool {
	return isDemoKey(c.apiKey())
}
