package fetch

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"

	"github.com/finvo/respcache/cache"
)

// Endpoint is one warmup target.
type Endpoint struct {
	URL string
	Key string
	TTL time.Duration
}

// DefaultEndpoints builds the warmup set for the three data categories the
// app reads on every dashboard visit.
func DefaultEndpoints(base string) []Endpoint {
	base = strings.TrimRight(base, "/")
	return []Endpoint{
		{URL: base + "/api/dashboard/summary", Key: "dashboard:summary", TTL: cache.TTLDashboard},
		{URL: base + "/api/invoices?page=1", Key: "invoices:page:1", TTL: cache.TTLInvoiceList},
		{URL: base + "/api/customers", Key: "customers:all", TTL: cache.TTLCustomerList},
	}
}

// Preloader warms the cache with a fixed set of fetches. Pure best effort:
// failures are logged and discarded, never surfaced.
type Preloader struct {
	client    *Client
	endpoints []Endpoint
}

func NewPreloader(c *Client, endpoints []Endpoint) *Preloader {
	return &Preloader{client: c, endpoints: endpoints}
}

// Warm fires all endpoint fetches concurrently and returns once every one
// has finished.
func (p *Preloader) Warm(ctx context.Context) {
	var g errgroup.Group
	for _, ep := range p.endpoints {
		g.Go(func() error {
			_, err := JSON[json.RawMessage](ctx, p.client, ep.URL, Options{Key: ep.Key, TTL: ep.TTL})
			if err != nil {
				log.WithError(err).WithField("url", ep.URL).Warn("preload fetch failed")
			}
			return nil
		})
	}
	_ = g.Wait()
}
