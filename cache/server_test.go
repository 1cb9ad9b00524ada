package cache

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestServer runs Serve against a Bolt store on a short-lived Unix
// socket and returns a connected client.
func startTestServer(t *testing.T, clk *fakeClock) *Client {
	t.Helper()

	// Unix socket paths are length-limited, so avoid t.TempDir here.
	dir, err := os.MkdirTemp("", "respcache")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	store, err := OpenBolt(filepath.Join(dir, "cache.db"), BoltOptions{Clock: clk.Now})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	sock := filepath.Join(dir, "cache.sock")
	l, err := net.Listen("unix", sock)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- Serve(l, store) }()
	t.Cleanup(func() {
		_ = l.Close()
		require.NoError(t, <-done)
	})

	return NewClient(sock)
}

func TestClientServerRoundTrip(t *testing.T) {
	c := startTestServer(t, newFakeClock())

	require.NoError(t, c.Put("invoices:page:1", []byte(`[{"id":1}]`), time.Minute))
	got, err := c.Get("invoices:page:1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), got)
}

func TestClientServerNotFound(t *testing.T) {
	c := startTestServer(t, newFakeClock())

	_, err := c.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientServerExpiry(t *testing.T) {
	clk := newFakeClock()
	c := startTestServer(t, clk)

	require.NoError(t, c.Put("k", []byte("v"), time.Minute))
	clk.Advance(61 * time.Second)

	_, err := c.Get("k")
	assert.ErrorIs(t, err, ErrExpired)
}

func TestClientServerDeleteAndClear(t *testing.T) {
	c := startTestServer(t, newFakeClock())

	require.NoError(t, c.Put("a", []byte("1"), time.Minute))
	require.NoError(t, c.Put("b", []byte("2"), time.Minute))

	require.NoError(t, c.Delete("a"))
	_, err := c.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Get("b")
	require.NoError(t, err)

	require.NoError(t, c.Clear())
	_, err = c.Get("b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServerUnknownOp(t *testing.T) {
	resp := handle(Request{Op: "bogus"}, mustBolt(t))
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "unknown op")
}

func mustBolt(t *testing.T) *Bolt {
	t.Helper()
	s, err := OpenBolt(filepath.Join(t.TempDir(), "cache.db"), BoltOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
