package ws

import (
	"context"
	"errors"
	"sync"
)

// fakeConn records the frames a session or relay writes to it.
type fakeConn struct {
	mu     sync.Mutex
	frames []serverFrame
	closed bool
}

func (f *fakeConn) writeJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errors.New("connection closed")
	}
	f.frames = append(f.frames, v.(serverFrame))
	return nil
}

func (f *fakeConn) close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeConn) received() []serverFrame {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]serverFrame, len(f.frames))
	copy(out, f.frames)
	return out
}

func (f *fakeConn) lastFrame() (serverFrame, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.frames) == 0 {
		return serverFrame{}, false
	}
	return f.frames[len(f.frames)-1], true
}

func (f *fakeConn) framesOfType(typ string) []serverFrame {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []serverFrame
	for _, fr := range f.frames {
		if fr.Type == typ {
			out = append(out, fr)
		}
	}
	return out
}

// fakeStore is an in-memory history store with scriptable failures.
type fakeStore struct {
	mu        sync.Mutex
	appends   map[string][]string
	lines     []string
	fetchErr  error
	appendErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{appends: make(map[string][]string)}
}

func (f *fakeStore) Append(_ context.Context, roomID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appends[roomID] = append(f.appends[roomID], text)
	return nil
}

func (f *fakeStore) Fetch(_ context.Context, roomID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.lines, nil
}

func (f *fakeStore) appended(roomID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.appends[roomID]))
	copy(out, f.appends[roomID])
	return out
}
