package cmd

import (
	"errors"
	"fmt"
)

// MinSimulationTime is the shortest post-warmup duration, in minutes, the CLI
// accepts. Shorter runs rarely record anything.
const MinSimulationTime = 10

var errInvalidRequest = errors.New("invalid run request")

// validateRequest applies the caller-side checks on the three user inputs
// before a kernel Config is built.
func validateRequest(x, y, simulationTime int) error {
	if x <= 0 || y <= 0 || simulationTime <= 0 {
		return fmt.Errorf("%w: all parameters must be positive integers (x=%d, y=%d, time=%d)",
			errInvalidRequest, x, y, simulationTime)
	}
	if x <= y {
		return fmt.Errorf("%w: x should be greater than y for meaningful control (x=%d, y=%d)",
			errInvalidRequest, x, y)
	}
	if simulationTime < MinSimulationTime {
		return fmt.Errorf("%w: simulation time must be at least %d minutes, got %d",
			errInvalidRequest, MinSimulationTime, simulationTime)
	}
	return nil
}
