package cache

import (
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/apex/log"
)

// Serve accepts connections on l and answers protocol requests against kv.
// It returns nil once l is closed.
func Serve(l net.Listener, kv KV) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.WithError(err).Warn("accept cache connection")
			continue
		}
		go handleConn(conn, kv)
	}
}

func handleConn(conn net.Conn, kv KV) {
	defer conn.Close()
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)
	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			return
		}
		_ = enc.Encode(handle(req, kv))
	}
}

func handle(req Request, kv KV) Response {
	switch req.Op {
	case "get":
		v, err := kv.Get(req.Key)
		if err != nil {
			return Response{Error: err.Error()}
		}
		return Response{OK: true, Value: v}
	case "put":
		ttl := time.Duration(req.TTLMillis) * time.Millisecond
		if err := kv.Put(req.Key, req.Value, ttl); err != nil {
			return Response{Error: err.Error()}
		}
		return Response{OK: true}
	case "delete":
		if err := kv.Delete(req.Key); err != nil {
			return Response{Error: err.Error()}
		}
		return Response{OK: true}
	case "clear":
		if err := kv.Clear(); err != nil {
			return Response{Error: err.Error()}
		}
		return Response{OK: true}
	default:
		return Response{Error: "unknown op: " + req.Op}
	}
}
