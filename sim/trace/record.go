// Package trace provides decision-trace recording for activation and routing analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TransitionRecord captures a single change of the secondary server's state.
type TransitionRecord struct {
	EntityID    string  // Arrival whose evaluation caused the transition
	Clock       float64 // Simulated minute of the transition
	QueueLength int     // Primary wait-queue length observed by the policy
	Enabled     bool    // State after the transition
}

// RoutingRecord captures a single routing decision.
type RoutingRecord struct {
	EntityID         string
	Clock            float64
	Server           string // Name of the chosen server
	Reason           string
	SecondaryEnabled bool // Activation state the router saw
	PrimaryQueue     int  // Primary wait-queue length at the decision
}
