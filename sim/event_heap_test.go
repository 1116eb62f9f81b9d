package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventHeap_TimestampOrdering tests that events are popped in timestamp order
func TestEventHeap_TimestampOrdering(t *testing.T) {
	h := NewEventHeap()

	// Add events with different timestamps in random order
	h.Schedule(&ArrivalEvent{time: 10})
	h.Schedule(&ArrivalEvent{time: 5})
	h.Schedule(&ArrivalEvent{time: 15})

	// Should be popped in timestamp order: 5, 10, 15
	assert.Equal(t, 5.0, h.PopNext().Timestamp())
	assert.Equal(t, 10.0, h.PopNext().Timestamp())
	assert.Equal(t, 15.0, h.PopNext().Timestamp())
	assert.Equal(t, 0, h.Len())
}

// TestEventHeap_SameTimestamp_FIFO tests that same-time events come out in scheduling order
func TestEventHeap_SameTimestamp_FIFO(t *testing.T) {
	h := NewEventHeap()
	entities := []*Entity{NewEntity("a", 0), NewEntity("b", 0), NewEntity("c", 0), NewEntity("d", 0)}

	// GIVEN four resumptions at the same time, interleaved with an earlier and a later event
	h.Schedule(&ResumeEvent{time: 3, Entity: entities[0]})
	h.Schedule(&ArrivalEvent{time: 4})
	h.Schedule(&ResumeEvent{time: 3, Entity: entities[1]})
	h.Schedule(&ArrivalEvent{time: 1})
	h.Schedule(&ResumeEvent{time: 3, Entity: entities[2]})
	h.Schedule(&ResumeEvent{time: 3, Entity: entities[3]})

	// WHEN events are popped
	require.Equal(t, 1.0, h.PopNext().Timestamp())
	var got []string
	for i := 0; i < 4; i++ {
		ev, ok := h.PopNext().(*ResumeEvent)
		require.True(t, ok)
		got = append(got, ev.Entity.ID)
	}

	// THEN the ties resume first scheduled, first resumed
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	assert.Equal(t, 4.0, h.PopNext().Timestamp())
}

func TestEventHeap_Empty_ReturnsNil(t *testing.T) {
	h := NewEventHeap()
	assert.Nil(t, h.Peek())
	assert.Nil(t, h.PopNext())
}

func TestEventHeap_Peek_DoesNotRemove(t *testing.T) {
	h := NewEventHeap()
	h.Schedule(&ArrivalEvent{time: 2})
	assert.Equal(t, 2.0, h.Peek().Timestamp())
	assert.Equal(t, 1, h.Len())
}
