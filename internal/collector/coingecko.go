package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// CoinGeckoFetcher implements Fetcher using the CoinGecko simple price endpoint.
type CoinGeckoFetcher struct {
	URL      string
	Asset    string // CoinGecko coin id, e.g. "bitcoin"
	Currency string // vs currency, e.g. "usd"
	Client   *resty.Client
}

// NewCoinGeckoFetcher creates a fetcher with optional proxy support.
func NewCoinGeckoFetcher(url, asset, currency, proxyURL string) *CoinGeckoFetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("Accept", "application/json")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &CoinGeckoFetcher{
		URL:      url,
		Asset:    asset,
		Currency: currency,
		Client:   client,
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// FetchPrice returns the asset's current price exactly as the API reports it.
// Any number is accepted, zero and negatives included.
func (f *CoinGeckoFetcher) FetchPrice(ctx context.Context) (float64, error) {
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":           f.Asset,
			"vs_currencies": f.Currency,
		}).
		Get(f.URL)
	if err != nil {
		return 0, &NetworkError{Err: err}
	}
	if !resp.IsSuccess() {
		return 0, &NetworkError{
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("body: %s", truncate(resp.String(), 256)),
		}
	}
	return extractPrice(resp.Body(), f.Asset, f.Currency)
}

// extractPrice pulls body[asset][currency] and checks it is a JSON number.
// Unrelated keys in the response are ignored.
func extractPrice(body []byte, asset, currency string) (float64, error) {
	field := asset + "." + currency

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return 0, fmt.Errorf("decode price response: %w", err)
	}
	quotes, ok := root.(map[string]any)
	if !ok {
		return 0, &SchemaValidationError{Field: field, Got: jsonKind(root)}
	}

	node, ok := quotes[asset]
	if !ok {
		return 0, &SchemaValidationError{Field: field, Got: "missing"}
	}
	byCurrency, ok := node.(map[string]any)
	if !ok {
		return 0, &SchemaValidationError{Field: field, Got: jsonKind(node)}
	}
	v, ok := byCurrency[currency]
	if !ok {
		return 0, &SchemaValidationError{Field: field, Got: "missing"}
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, &SchemaValidationError{Field: field, Got: jsonKind(v)}
	}
	// Out-of-range numbers come back as ±Inf; no range check is applied.
	price, err := strconv.ParseFloat(num.String(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}
	return price, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case json.Number:
		return "number"
	case string:
		return "string"
	case bool:
		return "bool"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
