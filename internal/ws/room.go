package ws

import "sync"

type room struct {
	mu      sync.RWMutex
	members map[conn]struct{}
}

func newRoom() *room { return &room{members: map[conn]struct{}{}} }

func (r *room) add(c conn) {
	r.mu.Lock()
	r.members[c] = struct{}{}
	r.mu.Unlock()
}

// remove reports how many members are left.
func (r *room) remove(c conn) int {
	r.mu.Lock()
	delete(r.members, c)
	n := len(r.members)
	r.mu.Unlock()
	return n
}

// snapshot copies the member set so broadcast I/O runs outside the lock.
func (r *room) snapshot() []conn {
	r.mu.RLock()
	members := make([]conn, 0, len(r.members))
	for c := range r.members {
		members = append(members, c)
	}
	r.mu.RUnlock()
	return members
}

func (r *room) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}
