package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityState_Constants_HaveExpectedStringValues(t *testing.T) {
	assert.Equal(t, EntityState("arrived"), StateArrived)
	assert.Equal(t, EntityState("routed"), StateRouted)
	assert.Equal(t, EntityState("queued"), StateQueued)
	assert.Equal(t, EntityState("in_service"), StateInService)
	assert.Equal(t, EntityState("departed"), StateDeparted)
}

func TestNewEntity_DefaultState_IsArrived(t *testing.T) {
	e := NewEntity("entity_0", 12.5)
	assert.Equal(t, StateArrived, e.State)
	assert.Equal(t, 12.5, e.ArrivalTime)
	assert.Nil(t, e.Server)
}

func TestEntity_String_IncludesStateAndServer(t *testing.T) {
	e := NewEntity("entity_3", 1)
	assert.Contains(t, e.String(), "arrived")
	assert.Contains(t, e.String(), "Server: -")

	e.Server = NewResource("WS2", 1, 1)
	e.State = StateQueued
	assert.Contains(t, e.String(), "WS2")
	assert.Contains(t, e.String(), "queued")
}

func TestEntity_TimeInSystem(t *testing.T) {
	e := NewEntity("e", 20)
	e.DepartureTime = 27.5
	assert.Equal(t, 7.5, e.TimeInSystem())
}
