package ws

import (
	"context"
	"encoding/json"
	"strings"

	"chatrelay/internal/history"

	"go.uber.org/zap"
)

// Session is the per-connection protocol state machine. A session starts
// uninitialized; the first accepted frame must be an init that creates or
// joins a room, after which roomID and username are bound together and the
// session only relays chat lines. Initialization happens at most once.
type Session struct {
	conn  conn
	hub   *Hub
	relay *Relay
	store history.Store

	initialized bool
	roomID      string
	username    string
}

func NewSession(c conn, hub *Hub, relay *Relay, store history.Store) *Session {
	return &Session{
		conn:  c,
		hub:   hub,
		relay: relay,
		store: store,
	}
}

// HandleFrame consumes one raw frame. Frames of a single connection arrive
// here strictly in order.
func (s *Session) HandleFrame(ctx context.Context, data []byte) {
	var frame clientFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		sendError(s.conn, errInvalidMsg)
		return
	}

	switch frame.Type {
	case "init":
		s.handleInit(ctx, frame)
	case "msg":
		s.handleChat(frame)
	default:
		sendError(s.conn, errInvalidMsgType)
	}
}

func (s *Session) handleInit(ctx context.Context, frame clientFrame) {
	if s.initialized {
		sendWarning(s.conn, warnAlreadyInitialized)
		return
	}
	if strings.TrimSpace(frame.Username) == "" {
		sendError(s.conn, errInvalidUsername)
		return
	}

	var roomID string
	switch frame.Action {
	case "create":
		roomID = s.hub.CreateRoom(s.conn)
		sendInfo(s.conn, roomID)
	case "join":
		if err := s.hub.Join(frame.RoomID, s.conn); err != nil {
			sendError(s.conn, errInvalidRoomID)
			return
		}
		roomID = frame.RoomID
		sendInfo(s.conn, roomID)
		s.replayHistory(ctx, roomID)
	default:
		sendError(s.conn, errInvalidMsg)
		return
	}

	s.roomID = roomID
	s.username = frame.Username
	s.initialized = true

	s.relay.Deliver(roomID, joinLine(frame.Username))
}

// replayHistory sends prior lines to the joining connection only. A fetch
// failure degrades to a warning; the join itself already succeeded.
func (s *Session) replayHistory(ctx context.Context, roomID string) {
	lines, err := s.store.Fetch(ctx, roomID)
	if err != nil {
		zap.L().Warn("history.fetch", zap.String("room_id", roomID), zap.Error(err))
		sendWarning(s.conn, warnHistoryFailed)
		return
	}
	if len(lines) > 0 {
		sendHistory(s.conn, lines)
	}
}

func (s *Session) handleChat(frame clientFrame) {
	if !s.initialized {
		sendWarning(s.conn, warnNotInitialized)
		return
	}
	// Initialization binds roomID and username together, so these two
	// should never fire; they mirror the fatal paths clients expect.
	if s.roomID == "" {
		sendError(s.conn, errNotInRoom)
		return
	}
	if s.username == "" {
		sendError(s.conn, errInvalidUsername)
		return
	}

	s.relay.Deliver(s.roomID, chatLine(s.username, frame.Text))
}

// Close releases the session's room membership; the room disappears with
// its last member.
func (s *Session) Close() {
	if s.roomID != "" {
		s.hub.Leave(s.roomID, s.conn)
	}
}
