package policy

import "math/rand/v2"

// Target identifies one of the two servers.
type Target int

const (
	TargetPrimary Target = iota
	TargetSecondary
)

func (t Target) String() string {
	if t == TargetSecondary {
		return "secondary"
	}
	return "primary"
}

// RoutingDecision encapsulates the routing decision for an entity.
type RoutingDecision struct {
	Target Target // Server the entity joins
	Reason string // Human-readable explanation
}

// Router decides which server an arriving entity joins.
type Router interface {
	Route(secondaryEnabled bool) RoutingDecision
}

// RandomRouter sends everything to the primary while the secondary is
// disabled, and otherwise picks either server with equal probability.
// The choice is unweighted; queue lengths are not consulted.
type RandomRouter struct {
	rng *rand.Rand
}

// NewRandomRouter creates a RandomRouter drawing from rng.
func NewRandomRouter(rng *rand.Rand) *RandomRouter {
	if rng == nil {
		panic("NewRandomRouter: rng must not be nil")
	}
	return &RandomRouter{rng: rng}
}

// Route implements Router for RandomRouter.
func (r *RandomRouter) Route(secondaryEnabled bool) RoutingDecision {
	if !secondaryEnabled {
		return RoutingDecision{Target: TargetPrimary, Reason: "secondary disabled"}
	}
	if r.rng.IntN(2) == 0 {
		return RoutingDecision{Target: TargetPrimary, Reason: "coin flip"}
	}
	return RoutingDecision{Target: TargetSecondary, Reason: "coin flip"}
}
