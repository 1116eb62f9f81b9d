// Package sim provides the discrete-event simulation kernel for a two-server
// service system whose second server is switched on and off by a hysteresis
// policy.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - entity.go: Entity lifecycle (arrived → routed → queued → in service → departed)
//   - event.go: Event types that drive the simulation (arrival wake-ups, entity resumptions)
//   - simulator.go: The event loop, routing, service and departure handling
//
// # Architecture
//
// Every suspended process is represented by exactly one pending event in the
// EventHeap, ordered by wake time and then by scheduling order. The Simulator
// pops one event at a time, so Resources, the activation state and Metrics are
// only ever mutated by the event loop and need no locks.
//
// All randomness comes from a single VariateSource derived from a
// SimulationKey. Two runs with the same Config (including Seed) produce
// identical Summaries.
//
// Sub-packages:
//   - sim/policy/: hysteresis activation policy and the routing rule
//   - sim/trace/: decision trace recording
package sim
