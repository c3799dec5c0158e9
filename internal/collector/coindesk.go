package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CoinDeskFetcher implements SpotFetcher using the CoinDesk current-price API.
type CoinDeskFetcher struct {
	URL    string
	Client *http.Client
}

// NewCoinDeskFetcher creates a spot fetcher with optional proxy support.
func NewCoinDeskFetcher(spotURL, proxyURL string) *CoinDeskFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinDeskFetcher{
		URL: spotURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *CoinDeskFetcher) Name() string { return "coindesk" }

// coindeskPrice is the current-price response shape. The rate comes back as
// a comma-grouped string ("65,432.10").
type coindeskPrice struct {
	BPI struct {
		USD struct {
			Rate string `json:"rate"`
		} `json:"USD"`
	} `json:"bpi"`
}

func (f *CoinDeskFetcher) FetchSpotPrice(_ string) (float64, error) {
	resp, err := f.Client.Get(f.URL)
	if err != nil {
		return 0, fmt.Errorf("coindesk fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("coindesk read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("coindesk: status %d, body: %s", resp.StatusCode, string(body))
	}

	var price coindeskPrice
	if err := json.Unmarshal(body, &price); err != nil {
		return 0, fmt.Errorf("coindesk decode: %w", err)
	}
	rate := strings.ReplaceAll(price.BPI.USD.Rate, ",", "")
	if rate == "" {
		return 0, fmt.Errorf("coindesk: empty USD rate")
	}
	spot, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return 0, fmt.Errorf("coindesk parse rate %q: %w", rate, err)
	}
	return spot, nil
}
