package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newIdleSimulator returns a Simulator whose arrival process has been removed,
// so tests can admit entities by hand.
func newIdleSimulator(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	s.EventQueue = NewEventHeap()
	return s
}

func TestNewSimulator_InvalidConfig_ReturnsError(t *testing.T) {
	s, err := NewSimulator(DefaultConfig(1, 1, 100))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, s)
}

func TestNewSimulator_PrimesArrivalProcess(t *testing.T) {
	s, err := NewSimulator(DefaultConfig(5, 3, 100))
	require.NoError(t, err)

	require.Equal(t, 1, s.EventQueue.Len())
	_, ok := s.EventQueue.Peek().(*ArrivalEvent)
	assert.True(t, ok)
	assert.Equal(t, 120.0, s.Horizon)
	assert.False(t, s.Policy.Enabled())
}

func TestSimulator_Schedule_InThePast_Panics(t *testing.T) {
	s := newIdleSimulator(t, DefaultConfig(5, 3, 100))
	s.Clock = 10
	assert.Panics(t, func() { s.Schedule(&ArrivalEvent{time: 9.5}) })
	assert.NotPanics(t, func() { s.Schedule(&ArrivalEvent{time: 10}) })
}

func TestSimulator_Run_StopsAtHorizon(t *testing.T) {
	s, err := NewSimulator(DefaultConfig(5, 3, 100))
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background()))

	// THEN the clock sits at the horizon and nothing pending is earlier
	assert.Equal(t, s.Horizon, s.Clock)
	assert.Equal(t, s.Horizon, s.Metrics.SimEndedTime)
	for s.EventQueue.Len() > 0 {
		assert.GreaterOrEqual(t, s.EventQueue.PopNext().Timestamp(), s.Horizon)
	}
}

func TestSimulator_Run_Drain_CompletesInFlight(t *testing.T) {
	cfg := DefaultConfig(5, 3, 100)
	cfg.Horizon.DrainInFlight = true
	s, err := NewSimulator(cfg)
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, 0, s.EventQueue.Len())
	assert.Equal(t, 0, s.Primary.Held())
	assert.Equal(t, 0, s.Secondary.Held())
	assert.Equal(t, 0, s.Primary.Waiting())
	assert.GreaterOrEqual(t, s.Clock, s.Horizon)
}

func TestSimulator_Run_CancelledContext_Aborts(t *testing.T) {
	s, err := NewSimulator(DefaultConfig(5, 3, 100))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_WarmupArrival_NotRecordedEvenIfDepartingLater(t *testing.T) {
	cfg := DefaultConfig(5, 3, 100)
	cfg.Horizon.DrainInFlight = true
	s := newIdleSimulator(t, cfg)

	// GIVEN one arrival during warmup and one right after it
	s.Clock = 19
	s.admit(19)
	for s.EventQueue.Len() > 0 && s.EventQueue.Peek().Timestamp() < 20.5 {
		ev := s.EventQueue.PopNext()
		s.Clock = ev.Timestamp()
		ev.Execute(s)
	}
	s.Clock = 20.5
	s.admit(20.5)

	// WHEN the remaining lifecycle events run to completion
	require.NoError(t, s.Run(context.Background()))

	// THEN both were served but only the post-warmup arrival was recorded
	assert.Equal(t, 2, s.Metrics.TotalArrivals)
	assert.Equal(t, 1, s.Metrics.WarmupArrivals)
	assert.Equal(t, 1, s.Metrics.Count())
	assert.GreaterOrEqual(t, s.Metrics.QueueWaits[0], 0.0)
}

func TestSimulator_Admit_ActivatesSecondaryAtThreshold(t *testing.T) {
	s := newIdleSimulator(t, DefaultConfig(2, 1, 100))

	// GIVEN four arrivals at the same instant: one served, then the WS1 queue grows
	s.admit(1) // granted, queue 0
	s.admit(1) // queue 0 < x, waits → queue 1
	s.admit(1) // queue 1 < x, waits → queue 2
	assert.False(t, s.Policy.Enabled())
	assert.Equal(t, 2, s.Primary.Waiting())

	// WHEN the next arrival observes queue length 2 == x
	s.admit(1)

	// THEN WS2 is enabled exactly once
	assert.True(t, s.Policy.Enabled())
	assert.Equal(t, 1, s.Metrics.Activations)
	assert.Equal(t, 0, s.Metrics.Deactivations)
}

func TestSimulator_Depart_GrantsHeadOfQueueAtSameTime(t *testing.T) {
	s := newIdleSimulator(t, DefaultConfig(5, 3, 100))
	s.admit(1)
	s.admit(1)
	require.Equal(t, 1, s.Primary.Waiting())
	waiter := s.Primary.WaitQ.Peek()

	// WHEN the first entity finishes service
	first, ok := s.EventQueue.PopNext().(*ResumeEvent)
	require.True(t, ok)
	s.Clock = first.Timestamp()
	first.Execute(s)

	// THEN the waiter is resumed at the release time
	next, ok := s.EventQueue.Peek().(*ResumeEvent)
	require.True(t, ok)
	assert.Same(t, waiter, next.Entity)
	assert.Equal(t, s.Clock, next.Timestamp())
	assert.Equal(t, StateDeparted, first.Entity.State)
	assert.Equal(t, 0, s.Primary.Waiting())
	assert.Equal(t, 1, s.Primary.Held())
}

func TestResumeEvent_DepartedEntity_Panics(t *testing.T) {
	s := newIdleSimulator(t, DefaultConfig(5, 3, 100))
	e := NewEntity("done", 0)
	e.State = StateDeparted
	assert.Panics(t, func() { (&ResumeEvent{time: 1, Entity: e}).Execute(s) })
}
