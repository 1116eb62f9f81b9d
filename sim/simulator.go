// sim/simulator.go
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/hysteresis-sim/sim/policy"
	"github.com/inference-sim/hysteresis-sim/sim/trace"
)

// Server names used in logs, traces and Summary.ServedBy.
const (
	PrimaryName   = "WS1"
	SecondaryName = "WS2"
)

// Simulator is the core object that holds simulation time, system state, and the event loop.
// It owns both servers, the activation policy and the metrics for exactly one run.
type Simulator struct {
	Clock   float64 // current simulated time, in minutes
	Horizon float64 // warmup + simulation time
	Warmup  float64
	// EventQueue holds one pending wake-up per suspended process
	EventQueue *EventHeap

	Primary   *Resource
	Secondary *Resource
	Policy    *policy.Hysteresis
	Router    policy.Router
	Metrics   *Metrics
	// Trace is nil unless the Config asked for decision tracing
	Trace *trace.SimulationTrace

	cfg         Config
	rng         *VariateSource
	arrivalRate float64
	admitted    int

	// post-warmup time accounting for the secondary server
	secondaryOnSince float64
	secondaryOpen    bool
}

// NewSimulator validates cfg and builds a Simulator with the arrival process
// primed: the first inter-arrival gap is already scheduled.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewVariateSource(NewSimulationKey(cfg.Seed))
	s := &Simulator{
		Clock:       0,
		Horizon:     cfg.EndTime(),
		Warmup:      cfg.Horizon.Warmup,
		EventQueue:  NewEventHeap(),
		Primary:     NewResource(PrimaryName, 1, 1/cfg.Service.PrimaryServiceMean),
		Secondary:   NewResource(SecondaryName, 1, 1/cfg.Service.SecondaryServiceMean),
		Policy:      policy.NewHysteresis(cfg.Thresholds.Activate, cfg.Thresholds.Deactivate),
		Router:      policy.NewRandomRouter(rng.Rand()),
		Metrics:     NewMetrics(),
		cfg:         cfg,
		rng:         rng,
		arrivalRate: 1 / cfg.Service.ArrivalMean,
	}
	if cfg.TraceLevel.Enabled() {
		s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: cfg.TraceLevel})
	}
	s.scheduleNextArrival(0)
	return s, nil
}

// Schedule pushes an event into the simulator's EventQueue.
// Scheduling an event earlier than the current clock is a programmer error.
func (sim *Simulator) Schedule(ev Event) {
	if ev.Timestamp() < sim.Clock {
		panic(fmt.Sprintf("Schedule: %T at %.6f is earlier than clock %.6f", ev, ev.Timestamp(), sim.Clock))
	}
	sim.EventQueue.Schedule(ev)
}

// Run processes events until the queue is empty or the horizon is reached.
// Events stamped at or after the horizon are abandoned unless DrainInFlight
// is set, in which case the loop continues until every admitted entity has
// departed. Cancelling ctx aborts the run between two events.
func (sim *Simulator) Run(ctx context.Context) error {
	logrus.Infof("Starting simulation: x=%d, y=%d, warmup=%.2f, horizon=%.2f, seed=%d",
		sim.cfg.Thresholds.Activate, sim.cfg.Thresholds.Deactivate, sim.Warmup, sim.Horizon, sim.cfg.Seed)

	drain := sim.cfg.Horizon.DrainInFlight
	for sim.EventQueue.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("simulation aborted at %.4f: %w", sim.Clock, err)
		}
		if !drain && sim.EventQueue.Peek().Timestamp() >= sim.Horizon {
			break
		}
		ev := sim.EventQueue.PopNext()
		// advance the clock
		sim.Clock = ev.Timestamp()
		logrus.Tracef("[t=%010.4f] Executing %T", sim.Clock, ev)
		ev.Execute(sim)
	}
	if sim.Clock < sim.Horizon {
		sim.Clock = sim.Horizon
	}
	sim.closeSecondaryWindow(sim.Clock)
	sim.Metrics.SimEndedTime = sim.Clock
	logrus.Infof("[t=%010.4f] Simulation ended: %d arrivals, %d recorded departures",
		sim.Clock, sim.Metrics.TotalArrivals, sim.Metrics.Count())
	return nil
}

// Summary aggregates the run's Metrics. Returns ErrNoEntities when no
// post-warmup entity departed.
func (sim *Simulator) Summary() (*Summary, error) {
	return sim.Metrics.Summarize(sim.cfg.Horizon.SimulationTime, sim.Clock-sim.Warmup)
}

// scheduleNextArrival samples the next inter-arrival gap and suspends the
// arrival process until then.
func (sim *Simulator) scheduleNextArrival(now float64) {
	gap := sim.rng.Exponential(sim.arrivalRate)
	sim.Schedule(&ArrivalEvent{time: now + gap})
}

// admit runs the first part of an entity's lifecycle: arrival, activation
// policy evaluation, routing, and the resource request.
func (sim *Simulator) admit(now float64) {
	e := NewEntity(fmt.Sprintf("entity_%d", sim.admitted), now)
	sim.admitted++
	sim.Metrics.TotalArrivals++
	if now < sim.Warmup {
		sim.Metrics.WarmupArrivals++
	}
	logrus.Debugf("<< Arrival: %s at %.4f", e.ID, now)

	queueLen := sim.Primary.Waiting()
	sim.evaluatePolicy(e, now, queueLen)

	decision := sim.Router.Route(sim.Policy.Enabled())
	e.Server = sim.server(decision.Target)
	e.State = StateRouted
	if sim.Trace != nil {
		sim.Trace.RecordRouting(trace.RoutingRecord{
			EntityID:         e.ID,
			Clock:            now,
			Server:           e.Server.Name,
			Reason:           decision.Reason,
			SecondaryEnabled: sim.Policy.Enabled(),
			PrimaryQueue:     queueLen,
		})
	}

	e.QueueStart = now
	e.State = StateQueued
	if e.Server.Acquire(e) {
		sim.startService(e, now)
		return
	}
	logrus.Debugf("   %s queued at %s (waiting=%d)", e.ID, e.Server.Name, e.Server.Waiting())
}

// evaluatePolicy runs the hysteresis rule once for the arriving entity.
func (sim *Simulator) evaluatePolicy(e *Entity, now float64, queueLen int) {
	transition := sim.Policy.Evaluate(queueLen)
	if transition == policy.NoChange {
		return
	}
	logrus.Debugf("   %s %s at %.4f (WS1 queue=%d)", SecondaryName, transition, now, queueLen)
	switch transition {
	case policy.Activated:
		sim.Metrics.Activations++
		sim.secondaryOnSince = now
		sim.secondaryOpen = true
	case policy.Deactivated:
		sim.Metrics.Deactivations++
		sim.closeSecondaryWindow(now)
	}
	if sim.Trace != nil {
		sim.Trace.RecordTransition(trace.TransitionRecord{
			EntityID:    e.ID,
			Clock:       now,
			QueueLength: queueLen,
			Enabled:     transition == policy.Activated,
		})
	}
}

// closeSecondaryWindow adds the post-warmup part of the open enabled
// interval, ending at now, to Metrics.SecondaryEnabledTime.
func (sim *Simulator) closeSecondaryWindow(now float64) {
	if !sim.secondaryOpen {
		return
	}
	start := math.Max(sim.secondaryOnSince, sim.Warmup)
	if now > start {
		sim.Metrics.SecondaryEnabledTime += now - start
	}
	sim.secondaryOpen = false
}

// startService is called when e has been granted its server.
func (sim *Simulator) startService(e *Entity, now float64) {
	e.QueueWait = now - e.QueueStart
	e.ServiceTime = sim.rng.Exponential(e.Server.ServiceRate)
	e.State = StateInService
	logrus.Debugf("   %s granted %s at %.4f after %.4f, service %.4f", e.ID, e.Server.Name, now, e.QueueWait, e.ServiceTime)
	sim.Schedule(&ResumeEvent{time: now + e.ServiceTime, Entity: e})
}

// depart releases e's server, resumes the next waiter and records e.
func (sim *Simulator) depart(e *Entity, now float64) {
	e.DepartureTime = now
	e.State = StateDeparted
	if next := e.Server.Release(); next != nil {
		sim.Schedule(&ResumeEvent{time: now, Entity: next})
	}
	recorded := sim.Metrics.Record(e, sim.Warmup)
	logrus.Debugf(">> Departure: %s from %s at %.4f (recorded=%v)", e.ID, e.Server.Name, now, recorded)
}

func (sim *Simulator) server(t policy.Target) *Resource {
	if t == policy.TargetSecondary {
		return sim.Secondary
	}
	return sim.Primary
}
