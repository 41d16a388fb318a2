package ws

import (
	"context"
	"time"

	"chatrelay/internal/history"

	"go.uber.org/zap"
)

const appendTimeout = 5 * time.Second

// Relay fans a rendered line out to a room's current members and records it
// in history without waiting on the write. Delivery and persistence are
// independent: a line every member saw may still fail to be recorded.
type Relay struct {
	hub   *Hub
	store history.Store
}

func NewRelay(hub *Hub, store history.Store) *Relay {
	return &Relay{hub: hub, store: store}
}

func (rl *Relay) Deliver(roomID, text string) {
	members := rl.hub.Members(roomID)
	if members == nil {
		zap.L().Warn("ws.deliver_unknown_room", zap.String("room_id", roomID))
		return
	}

	for _, c := range members {
		// A member whose connection already closed but has not been
		// reaped yet just misses the line.
		if err := c.writeJSON(serverFrame{Type: "msg", Text: text}); err != nil {
			zap.L().Debug("ws.deliver_skip", zap.Error(err))
		}
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
		defer cancel()
		if err := rl.store.Append(ctx, roomID, text); err != nil {
			zap.L().Warn("history.append", zap.String("room_id", roomID), zap.Error(err))
		}
	}()
}
