package curies

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Fetcher retrieves the bytes at a URL. It exists so callers can inject a
// test double or a caching client instead of the default *http.Client;
// the loader functions in this package (LoadSimplePrefixMap and friends)
// accept an optional Fetcher as their second argument, after the context.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a plain function to a Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) { return f(ctx, url) }

// defaultFetcher performs a plain HTTP GET and fails on any non-2xx status.
var defaultFetcher Fetcher = FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFetchFailed, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFetchFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetchFailed, url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body of %s: %s", ErrFetchFailed, url, err)
	}
	return body, nil
})

// isURL reports whether s looks like an absolute HTTP(S) URL rather than a
// local file path or literal document text.
func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// resolveSource returns the raw document bytes behind source: if source is
// an http(s) URL it is fetched with f (defaultFetcher if f is nil),
// otherwise it is read as a local file path.
func resolveSource(ctx context.Context, f Fetcher, source string) ([]byte, error) {
	if isURL(source) {
		if f == nil {
			f = defaultFetcher
		}
		return f.Fetch(ctx, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %s", ErrParse, source, err)
	}
	return data, nil
}
