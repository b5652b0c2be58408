// Package pagefetch retrieves raw upstream pages. Callers describe a page with
// a Request; how it is fetched, cached or retried is decided by the Fetcher
// chain assembled at startup.
package pagefetch

import (
	"context"
	"errors"
)

// ErrFetcherUnavailable is returned when a fetcher chain is missing its inner fetcher.
var ErrFetcherUnavailable = errors.New("page fetcher unavailable")

// Request describes one upstream page. Name, Type and Season form the cache key.
type Request struct {
	URL    string
	Name   string
	Type   string
	Season string
}

// Cacheable reports whether the request carries a complete cache key.
func (r Request) Cacheable() bool {
	return r.Name != "" && r.Type != "" && r.Season != ""
}

// Fetcher returns the raw body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, req Request) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, req Request) ([]byte, error) {
	return f(ctx, req)
}
