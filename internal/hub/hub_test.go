package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeAssignsUniqueIDs(t *testing.T) {
	h := New()
	a := h.Subscribe(nil)
	b := h.Subscribe(nil)
	t.Cleanup(func() {
		h.Unsubscribe(a)
		h.Unsubscribe(b)
	})

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, h.ClientCount())
}

func TestPublishDeliversToMatchingClients(t *testing.T) {
	h := New()
	all := h.Subscribe(nil)
	onlyTwo := h.Subscribe(func(e Event) bool { return e.ItemID == 2 })
	t.Cleanup(func() {
		h.Unsubscribe(all)
		h.Unsubscribe(onlyTwo)
	})

	h.Publish(Event{Type: EventItemUpdated, Table: "items", ItemID: 1})

	select {
	case e := <-all.Events():
		assert.Equal(t, int64(1), e.ItemID)
	default:
		t.Fatal("expected unfiltered client to receive event")
	}

	select {
	case e := <-onlyTwo.Events():
		t.Fatalf("filtered client should not receive %+v", e)
	default:
	}

	h.Publish(Event{Type: EventItemDeleted, Table: "items", ItemID: 2})

	select {
	case e := <-onlyTwo.Events():
		assert.Equal(t, EventItemDeleted, e.Type)
	default:
		t.Fatal("expected filtered client to receive matching event")
	}
}

func TestPublishCoalescesPendingSignals(t *testing.T) {
	h := New()
	c := h.Subscribe(nil)
	t.Cleanup(func() { h.Unsubscribe(c) })

	for i := 0; i < 10; i++ {
		h.Publish(Event{Type: EventItemInserted, Table: "items", ItemID: int64(i)})
	}

	require.Len(t, c.events, 1)
	e := <-c.Events()
	assert.Equal(t, int64(0), e.ItemID, "first signal is kept")

	select {
	case <-c.Events():
		t.Fatal("expected no further pending signal")
	default:
	}
}

func TestUnsubscribeClosesAndIsIdempotent(t *testing.T) {
	h := New()
	c := h.Subscribe(nil)

	h.Unsubscribe(c)
	h.Unsubscribe(c)

	_, ok := <-c.Events()
	assert.False(t, ok, "channel should be closed")
	assert.Equal(t, 0, h.ClientCount())

	// Publishing after unsubscribe must not panic on the closed channel.
	h.Publish(Event{Type: EventItemInserted, Table: "items"})
}
