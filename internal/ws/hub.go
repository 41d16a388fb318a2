package ws

import (
	"errors"
	"math/rand"
	"sync"
)

const (
	roomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	roomIDLength   = 6
)

var ErrRoomNotFound = errors.New("room not found")

// Hub is the room registry: roomID -> member set. A room exists exactly
// while it has at least one member.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*room
}

func NewHub() *Hub { return &Hub{rooms: make(map[string]*room)} }

// CreateRoom generates a fresh id and registers c as the sole member.
// Retries until the id is unused; with a 62^6 space that loop runs once.
func (h *Hub) CreateRoom(c conn) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var id string
	for {
		id = generateRoomID()
		if _, taken := h.rooms[id]; !taken {
			break
		}
	}
	r := newRoom()
	r.add(c)
	h.rooms[id] = r
	return id
}

// Join adds c to an existing room.
func (h *Hub) Join(roomID string, c conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	r.add(c)
	return nil
}

// Leave removes c from the room and deletes the room once empty.
// Unknown room/connection pairs are a no-op: a connection may disconnect
// before it ever joined.
func (h *Hub) Leave(roomID string, c conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[roomID]
	if !ok {
		return
	}
	if r.remove(c) == 0 {
		delete(h.rooms, roomID)
	}
}

// Members returns the room's membership as of this call.
func (h *Hub) Members(roomID string) []conn {
	h.mu.Lock()
	r, ok := h.rooms[roomID]
	h.mu.Unlock()
	if !ok {
		return nil
	}
	return r.snapshot()
}

// MemberCount reports the room's size and whether it exists at all.
func (h *Hub) MemberCount(roomID string) (int, bool) {
	h.mu.Lock()
	r, ok := h.rooms[roomID]
	h.mu.Unlock()
	if !ok {
		return 0, false
	}
	return r.size(), true
}

func generateRoomID() string {
	b := make([]byte, roomIDLength)
	for i := range b {
		b[i] = roomIDAlphabet[rand.Intn(len(roomIDAlphabet))]
	}
	return string(b)
}
