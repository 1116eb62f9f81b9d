// Defines the Entity struct that models one unit of work flowing through the system.
// Tracks arrival, routing, queue wait, service and departure.

package sim

import (
	"fmt"
)

// EntityState represents the lifecycle state of an entity.
type EntityState string

const (
	StateArrived   EntityState = "arrived"
	StateRouted    EntityState = "routed"
	StateQueued    EntityState = "queued"
	StateInService EntityState = "in_service"
	StateDeparted  EntityState = "departed"
)

// Entity is the per-arrival record. It exists from arrival to departure; after
// departure only its time-in-system and queue wait survive, in Metrics.
type Entity struct {
	ID string // Unique identifier, "entity_<n>" in arrival order

	State  EntityState // arrived, routed, queued, in_service, departed
	Server *Resource   // Resource chosen at routing time

	ArrivalTime   float64 // Simulated minute the entity arrived
	QueueStart    float64 // Simulated minute the entity requested its server
	QueueWait     float64 // Time spent waiting for the grant
	ServiceTime   float64 // Sampled service duration
	DepartureTime float64 // Simulated minute the server was released
}

// NewEntity creates an entity in the arrived state.
func NewEntity(id string, arrivalTime float64) *Entity {
	return &Entity{
		ID:          id,
		State:       StateArrived,
		ArrivalTime: arrivalTime,
	}
}

// TimeInSystem returns departure minus arrival. Only meaningful once departed.
func (e *Entity) TimeInSystem() float64 {
	return e.DepartureTime - e.ArrivalTime
}

// This method returns a human-readable string representation of an Entity.
func (e Entity) String() string {
	server := "-"
	if e.Server != nil {
		server = e.Server.Name
	}
	return fmt.Sprintf("Entity: (ID: %s, State: %s, Server: %s, ArrivalTime: %.4f)", e.ID, e.State, server, e.ArrivalTime)
}
