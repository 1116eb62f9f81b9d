package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResource_Acquire_GrantsWhileCapacityFree(t *testing.T) {
	r := NewResource("WS1", 1, 1)

	// GIVEN an idle single-capacity resource
	// WHEN two entities request it
	first := r.Acquire(NewEntity("a", 0))
	second := r.Acquire(NewEntity("b", 0))

	// THEN only the first is granted and the second waits
	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, 1, r.Held())
	assert.Equal(t, 1, r.Waiting())
}

// TestResource_Release_FIFOFairness verifies that grants follow request order.
func TestResource_Release_FIFOFairness(t *testing.T) {
	r := NewResource("WS1", 1, 1)
	holder := NewEntity("holder", 0)
	require.True(t, r.Acquire(holder))

	waiters := []*Entity{NewEntity("w0", 1), NewEntity("w1", 2), NewEntity("w2", 3)}
	for _, w := range waiters {
		require.False(t, r.Acquire(w))
	}

	// WHEN the resource is released repeatedly
	var order []string
	for i := 0; i < len(waiters); i++ {
		next := r.Release()
		require.NotNil(t, next)
		order = append(order, next.ID)
		// the granted entity holds the unit
		assert.Equal(t, 1, r.Held())
	}

	// THEN entities were granted in the order they enqueued
	assert.Equal(t, []string{"w0", "w1", "w2"}, order)
	assert.Nil(t, r.Release())
	assert.Equal(t, 0, r.Held())
}

func TestResource_Release_NothingHeld_Panics(t *testing.T) {
	r := NewResource("WS2", 1, 1)
	assert.Panics(t, func() { r.Release() })
}

func TestResource_Waiting_IsSideEffectFree(t *testing.T) {
	r := NewResource("WS1", 1, 1)
	r.Acquire(NewEntity("a", 0))
	r.Acquire(NewEntity("b", 0))
	r.Acquire(NewEntity("c", 0))

	assert.Equal(t, 2, r.Waiting())
	assert.Equal(t, 2, r.Waiting())
	assert.Equal(t, "b", r.WaitQ.Peek().ID)
}

func TestNewResource_NonPositiveCapacity_Panics(t *testing.T) {
	assert.Panics(t, func() { NewResource("bad", 0, 1) })
}

func TestWaitQueue_String_ListsIDs(t *testing.T) {
	wq := &WaitQueue{}
	wq.Enqueue(NewEntity("a", 0))
	wq.Enqueue(NewEntity("b", 0))
	assert.Equal(t, "[a b]", wq.String())
	assert.Equal(t, "a", wq.Dequeue().ID)
	assert.Equal(t, "[b]", wq.String())
}
