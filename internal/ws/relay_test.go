package ws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverReachesAllMembers(t *testing.T) {
	store := newFakeStore()
	hub := NewHub()
	relay := NewRelay(hub, store)

	a, b, c := &fakeConn{}, &fakeConn{}, &fakeConn{}
	roomID := hub.CreateRoom(a)
	require.NoError(t, hub.Join(roomID, b))
	require.NoError(t, hub.Join(roomID, c))

	relay.Deliver(roomID, "alice: hi")

	for _, member := range []*fakeConn{a, b, c} {
		msgs := member.framesOfType("msg")
		require.Len(t, msgs, 1)
		assert.Equal(t, "alice: hi", msgs[0].Text)
	}
}

func TestDeliverSkipsClosedMembers(t *testing.T) {
	store := newFakeStore()
	hub := NewHub()
	relay := NewRelay(hub, store)

	open, gone := &fakeConn{}, &fakeConn{}
	roomID := hub.CreateRoom(open)
	require.NoError(t, hub.Join(roomID, gone))
	gone.close() // closed but not yet reaped

	relay.Deliver(roomID, "alice: hi")

	require.Len(t, open.framesOfType("msg"), 1)
	assert.Empty(t, gone.framesOfType("msg"))
}

func TestDeliverUnknownRoomIsNoOp(t *testing.T) {
	relay := NewRelay(NewHub(), newFakeStore())
	relay.Deliver("noSuch", "alice: hi") // must not panic or append
}

func TestPersistenceFailureDoesNotBlockDelivery(t *testing.T) {
	store := newFakeStore()
	store.appendErr = errors.New("db down")

	hub := NewHub()
	relay := NewRelay(hub, store)

	a := &fakeConn{}
	roomID := hub.CreateRoom(a)

	relay.Deliver(roomID, "alice: hi")

	msgs := a.framesOfType("msg")
	require.Len(t, msgs, 1)
	assert.Equal(t, "alice: hi", msgs[0].Text)
	assert.False(t, a.isClosed())
}

// gatedStore blocks Append until released, to prove Deliver never waits on
// persistence.
type gatedStore struct {
	*fakeStore
	release chan struct{}
	entered chan struct{}
}

func (g *gatedStore) Append(ctx context.Context, roomID, text string) error {
	g.entered <- struct{}{}
	<-g.release
	return g.fakeStore.Append(ctx, roomID, text)
}

func TestDeliverDoesNotWaitOnAppend(t *testing.T) {
	store := &gatedStore{
		fakeStore: newFakeStore(),
		release:   make(chan struct{}),
		entered:   make(chan struct{}, 1),
	}
	hub := NewHub()
	relay := NewRelay(hub, store)

	a := &fakeConn{}
	roomID := hub.CreateRoom(a)

	done := make(chan struct{})
	go func() {
		relay.Deliver(roomID, "alice: hi")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Deliver blocked on the history append")
	}
	require.Len(t, a.framesOfType("msg"), 1)

	// The append is still in flight; let it finish and land.
	<-store.entered
	close(store.release)
	assert.Eventually(t, func() bool {
		return len(store.appended(roomID)) == 1
	}, time.Second, 10*time.Millisecond)
}
