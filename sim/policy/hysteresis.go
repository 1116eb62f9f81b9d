// Package policy holds the capacity-control decisions of the kernel: when the
// secondary server is enabled, and which server an arriving entity joins.
// This package has no dependency on sim/ so the rules can be tested in isolation.
package policy

import "fmt"

// ActivationState is the state of the secondary server.
type ActivationState string

const (
	SecondaryDisabled ActivationState = "disabled"
	SecondaryEnabled  ActivationState = "enabled"
)

// Transition describes the outcome of one Hysteresis evaluation.
type Transition int

const (
	NoChange Transition = iota
	Activated
	Deactivated
)

func (t Transition) String() string {
	switch t {
	case Activated:
		return "activated"
	case Deactivated:
		return "deactivated"
	default:
		return "no-change"
	}
}

// Hysteresis enables the secondary server when the primary queue reaches
// activateAt and disables it once the queue falls below deactivateBelow.
// Inside the dead band [deactivateBelow, activateAt) the state is kept.
type Hysteresis struct {
	activateAt      int // x
	deactivateBelow int // y
	state           ActivationState
}

// NewHysteresis creates a policy in the SecondaryDisabled state.
// Panics unless x > y > 0; Config.Validate rejects such inputs before a run.
func NewHysteresis(x, y int) *Hysteresis {
	if y <= 0 || x <= y {
		panic(fmt.Sprintf("NewHysteresis: thresholds must satisfy x > y > 0, got x=%d y=%d", x, y))
	}
	return &Hysteresis{
		activateAt:      x,
		deactivateBelow: y,
		state:           SecondaryDisabled,
	}
}

// Evaluate applies the transition rule for the observed primary queue length
// and reports what changed.
func (h *Hysteresis) Evaluate(queueLen int) Transition {
	switch h.state {
	case SecondaryDisabled:
		if queueLen >= h.activateAt {
			h.state = SecondaryEnabled
			return Activated
		}
	case SecondaryEnabled:
		if queueLen < h.deactivateBelow {
			h.state = SecondaryDisabled
			return Deactivated
		}
	}
	return NoChange
}

// Enabled reports whether the secondary server currently accepts entities.
func (h *Hysteresis) Enabled() bool {
	return h.state == SecondaryEnabled
}

// State returns the current activation state.
func (h *Hysteresis) State() ActivationState {
	return h.state
}

// Thresholds returns x and y.
func (h *Hysteresis) Thresholds() (activateAt, deactivateBelow int) {
	return h.activateAt, h.deactivateBelow
}
