package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in simulated minutes) and an Execute
// method that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ArrivalEvent wakes the arrival process once an inter-arrival gap has elapsed.
type ArrivalEvent struct {
	time float64 // Simulation time of the wake-up (in minutes)
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute admits a new entity unless the horizon has been reached, in which
// case the arrival process terminates without spawning anything.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	if e.time >= sim.Horizon {
		logrus.Debugf("<< Arrival process stopped at %.4f (horizon %.4f)", e.time, sim.Horizon)
		return
	}
	sim.admit(e.time)
	sim.scheduleNextArrival(e.time)
}

// ResumeEvent resumes a suspended entity, either because the resource it
// queued at has granted it or because its service hold has elapsed.
type ResumeEvent struct {
	time   float64 // Simulation time of the resumption (in minutes)
	Entity *Entity // The suspended entity
}

// Timestamp returns the scheduled time of the ResumeEvent.
func (e *ResumeEvent) Timestamp() float64 {
	return e.time
}

// Execute moves the entity to its next lifecycle state.
func (e *ResumeEvent) Execute(sim *Simulator) {
	switch e.Entity.State {
	case StateQueued:
		sim.startService(e.Entity, e.time)
	case StateInService:
		sim.depart(e.Entity, e.time)
	default:
		panic("ResumeEvent: entity " + e.Entity.ID + " cannot resume from state " + string(e.Entity.State))
	}
}
