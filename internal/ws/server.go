package ws

import (
	"context"
	"net/http"
	"time"

	"chatrelay/internal/history"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	maxFrameSize = 4096
	frameTimeout = 5 * time.Second
)

type WsServer struct {
	hub      *Hub
	relay    *Relay
	store    history.Store
	upgrader websocket.Upgrader
}

func NewWsServer(hub *Hub, relay *Relay, store history.Store) *WsServer {
	return &WsServer{
		hub:   hub,
		relay: relay,
		store: store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true }, // dev‑only
		},
	}
}

// ---------------------------------------------------------------------------
//  Public: Gin entry‑point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.accept", zap.Error(err))
		return
	}
	rawConn.SetReadLimit(maxFrameSize)

	go s.reader(&clientConn{rawConn: rawConn})
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

// reader owns the connection: one goroutine per client, frames handled in
// arrival order, membership cleaned up on the way out.
func (s *WsServer) reader(c *clientConn) {
	sess := NewSession(c, s.hub, s.relay, s.store)
	defer func() {
		sess.Close()
		c.close()
	}()

	for {
		_, data, err := c.rawConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.L().Debug("ws.read", zap.Error(err))
			}
			return // client closed or errored
		}

		ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
		sess.HandleFrame(ctx, data)
		cancel()
	}
}
