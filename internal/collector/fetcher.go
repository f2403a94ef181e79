package collector

import "context"

// Fetcher defines the interface for fetching the current asset price.
type Fetcher interface {
	FetchPrice(ctx context.Context) (float64, error)
	Name() string
}
