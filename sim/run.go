package sim

import (
	"context"

	"github.com/inference-sim/hysteresis-sim/sim/trace"
)

// Result is the outcome of a completed run: the summary plus, when tracing
// was requested, the decision trace.
type Result struct {
	Summary *Summary
	Trace   *trace.SimulationTrace
}

// Run validates cfg, simulates one independent run and returns its summary.
// Errors are a configuration error (wrapping ErrInvalidConfig), an abort
// (wrapping ctx.Err()) or ErrNoEntities.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	s, err := NewSimulator(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Run(ctx); err != nil {
		return nil, err
	}
	summary, err := s.Summary()
	if err != nil {
		return &Result{Trace: s.Trace}, err
	}
	return &Result{Summary: summary, Trace: s.Trace}, nil
}
