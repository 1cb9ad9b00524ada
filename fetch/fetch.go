// Package fetch issues HTTP requests for JSON API responses through an
// in-process cache. A hit returns the stored payload without touching the
// network; a miss fetches, decodes and stores it.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/finvo/respcache/cache"
)

// Error reports a non-2xx response. The body is discarded and nothing is
// cached; the single attempt surfaces directly to the caller.
type Error struct {
	StatusCode int
	URL        string
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Options controls one cached fetch.
type Options struct {
	// Key identifies the cache entry. Empty defaults to the request URL.
	Key string
	// TTL bounds how long the decoded payload stays valid.
	TTL time.Duration
	// Header carries extra request headers, merged over the defaults.
	Header http.Header
	// Method is the HTTP method. Empty defaults to GET.
	Method string
}

// Client pairs an HTTP client with a cache.Store. Concurrent misses for the
// same key share one request and one store write.
type Client struct {
	http  *http.Client
	store cache.Store
	group singleflight.Group
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client, e.g. to set a timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func NewClient(store cache.Store, opts ...ClientOption) *Client {
	c := &Client{http: http.DefaultClient, store: store}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store exposes the underlying cache, e.g. for invalidation after writes.
func (c *Client) Store() cache.Store { return c.store }

// do issues one request and returns the raw body. The default Cache-Control
// request header tells intermediaries not to serve us their stale copy; the
// caller's headers win on conflict.
func (c *Client) do(ctx context.Context, method, url string, hdr http.Header) ([]byte, error) {
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")
	for k, vs := range hdr {
		req.Header[http.CanonicalHeaderKey(k)] = vs
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{StatusCode: resp.StatusCode, URL: url}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// JSON returns the payload for url, serving from the cache when possible.
// On a miss the response body is decoded into T and stored under the key for
// opt.TTL. Failures are not cached and not retried.
func JSON[T any](ctx context.Context, c *Client, url string, opt Options) (T, error) {
	key := opt.Key
	if key == "" {
		key = url
	}
	if v, ok := cache.GetAs[T](c.store, key); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		body, err := c.do(ctx, opt.Method, url, opt.Header)
		if err != nil {
			return nil, err
		}
		var out T
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", url, err)
		}
		c.store.Set(key, out, opt.TTL)
		return out, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
