package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finvo/respcache/cache"
)

func TestDefaultEndpoints(t *testing.T) {
	eps := DefaultEndpoints("https://api.example.com/")
	require.Len(t, eps, 3)
	assert.Equal(t, "https://api.example.com/api/dashboard/summary", eps[0].URL)
	assert.Equal(t, "https://api.example.com/api/invoices?page=1", eps[1].URL)
	assert.Equal(t, "https://api.example.com/api/customers", eps[2].URL)
	assert.Equal(t, cache.TTLDashboard, eps[0].TTL)
	assert.Equal(t, cache.TTLInvoiceList, eps[1].TTL)
	assert.Equal(t, cache.TTLCustomerList, eps[2].TTL)
}

func TestWarmHitsEveryEndpoint(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.URL.Path]++
		mu.Unlock()
		if r.URL.Path == "/api/customers" {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	store := cache.NewMemory()
	p := NewPreloader(NewClient(store), DefaultEndpoints(srv.URL))

	// Warm never surfaces failures, it just returns.
	p.Warm(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, seen["/api/dashboard/summary"])
	assert.Equal(t, 1, seen["/api/invoices"])
	assert.Equal(t, 1, seen["/api/customers"])

	// Successful fetches are cached, the failing one is not.
	_, ok := store.Get("dashboard:summary")
	assert.True(t, ok)
	_, ok = store.Get("invoices:page:1")
	assert.True(t, ok)
	_, ok = store.Get("customers:all")
	assert.False(t, ok)
}
