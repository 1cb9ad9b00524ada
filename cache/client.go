package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"
)

// Client implements KV over the daemon's Unix socket, so several invoicing
// services on one host can share a single warm cache.
type Client struct {
	socketPath  string
	dialTimeout time.Duration
}

func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath, dialTimeout: 500 * time.Millisecond}
}

func (c *Client) roundTrip(req Request) (Response, error) {
	var resp Response
	conn, err := net.DialTimeout("unix", c.socketPath, c.dialTimeout)
	if err != nil {
		return resp, fmt.Errorf("dial cache daemon: %w", err)
	}
	defer conn.Close()
	if err := json.NewEncoder(conn).Encode(&req); err != nil {
		return resp, err
	}
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return resp, err
	}
	return resp, nil
}

func (c *Client) Get(key string) ([]byte, error) {
	resp, err := c.roundTrip(Request{Op: "get", Key: key})
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, decodeError(resp.Error)
	}
	return append([]byte(nil), resp.Value...), nil
}

func (c *Client) Put(key string, value []byte, ttl time.Duration) error {
	resp, err := c.roundTrip(Request{Op: "put", Key: key, Value: value, TTLMillis: ttl.Milliseconds()})
	if err != nil {
		return err
	}
	if !resp.OK {
		return decodeError(resp.Error)
	}
	return nil
}

func (c *Client) Delete(key string) error {
	resp, err := c.roundTrip(Request{Op: "delete", Key: key})
	if err != nil {
		return err
	}
	if !resp.OK {
		return decodeError(resp.Error)
	}
	return nil
}

func (c *Client) Clear() error {
	resp, err := c.roundTrip(Request{Op: "clear"})
	if err != nil {
		return err
	}
	if !resp.OK {
		return decodeError(resp.Error)
	}
	return nil
}

// decodeError maps wire error strings back to the package sentinels so
// errors.Is works the same against a Bolt store and a remote one.
func decodeError(msg string) error {
	switch msg {
	case ErrNotFound.Error():
		return ErrNotFound
	case ErrExpired.Error():
		return ErrExpired
	default:
		return errors.New(msg)
	}
}
