package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"PriceProphet/internal/model"

	"golang.org/x/time/rate"
)

// AlphaVantageFetcher implements HistoryFetcher using the Alpha Vantage
// TIME_SERIES_DAILY endpoint. Multiple API keys are tried in order; calls
// are paced by a rate limiter because the free tier throttles aggressively.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKeys []string
	Client  *http.Client
	limiter *rate.Limiter
}

// NewAlphaVantageFetcher creates a fetcher with optional proxy support.
func NewAlphaVantageFetcher(baseURL string, apiKeys []string, ratePerMin int, proxyURL string) *AlphaVantageFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if ratePerMin <= 0 {
		ratePerMin = 5
	}
	return &AlphaVantageFetcher{
		BaseURL: baseURL,
		APIKeys: apiKeys,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMin)), 1),
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// avDaily is the Alpha Vantage TIME_SERIES_DAILY response shape.
type avDaily struct {
	Series map[string]struct {
		Open   string `json:"1. open"`
		High   string `json:"2. high"`
		Low    string `json:"3. low"`
		Close  string `json:"4. close"`
		Volume string `json:"5. volume"`
	} `json:"Time Series (Daily)"`
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
}

// FetchDailyHistory retrieves the full daily series, rotating through the
// configured API keys until one succeeds.
func (f *AlphaVantageFetcher) FetchDailyHistory(symbol string) ([]model.OHLCV, error) {
	if len(f.APIKeys) == 0 {
		return nil, fmt.Errorf("alphavantage: no API keys configured")
	}
	var lastErr error
	for _, key := range f.APIKeys {
		bars, err := f.fetchWithKey(symbol, key)
		if err != nil {
			lastErr = err
			log.Printf("[WARN] alphavantage fetch with key ...%s failed: %v", tail(key), err)
			continue
		}
		return bars, nil
	}
	return nil, fmt.Errorf("alphavantage: all %d API keys failed: %w", len(f.APIKeys), lastErr)
}

func (f *AlphaVantageFetcher) fetchWithKey(symbol, apiKey string) ([]model.OHLCV, error) {
	if err := f.limiter.Wait(context.Background()); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&symbol=%s&outputsize=full&apikey=%s",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(apiKey))
	resp, err := f.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alphavantage read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode, string(body))
	}

	var daily avDaily
	if err := json.Unmarshal(body, &daily); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if daily.ErrorMessage != "" {
		return nil, fmt.Errorf("alphavantage api error: %s", daily.ErrorMessage)
	}
	if daily.Note != "" {
		return nil, fmt.Errorf("alphavantage throttled: %s", daily.Note)
	}
	if len(daily.Series) == 0 {
		return nil, fmt.Errorf("alphavantage: no data returned")
	}

	bars := make([]model.OHLCV, 0, len(daily.Series))
	for dateStr, q := range daily.Series {
		t, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("alphavantage parse date %q: %w", dateStr, err)
		}
		bar := model.OHLCV{Date: t}
		if bar.Open, err = strconv.ParseFloat(q.Open, 64); err != nil {
			return nil, fmt.Errorf("alphavantage parse open for %s: %w", dateStr, err)
		}
		if bar.High, err = strconv.ParseFloat(q.High, 64); err != nil {
			return nil, fmt.Errorf("alphavantage parse high for %s: %w", dateStr, err)
		}
		if bar.Low, err = strconv.ParseFloat(q.Low, 64); err != nil {
			return nil, fmt.Errorf("alphavantage parse low for %s: %w", dateStr, err)
		}
		if bar.Close, err = strconv.ParseFloat(q.Close, 64); err != nil {
			return nil, fmt.Errorf("alphavantage parse close for %s: %w", dateStr, err)
		}
		if bar.Volume, err = strconv.ParseFloat(q.Volume, 64); err != nil {
			return nil, fmt.Errorf("alphavantage parse volume for %s: %w", dateStr, err)
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func tail(key string) string {
	if len(key) <= 4 {
		return key
	}
	return key[len(key)-4:]
}
