package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// conn is the transport surface the hub, relay and session need from a
// member connection.
type conn interface {
	writeJSON(v any) error
	close()
}

// clientConn serializes writes to the underlying websocket; gorilla allows
// only one concurrent writer.
type clientConn struct {
	rawConn *websocket.Conn
	mu      sync.Mutex
}

func (c *clientConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteJSON(v)
}

func (c *clientConn) close() {
	_ = c.rawConn.Close()
}
