package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/inference-sim/hysteresis-sim/sim/trace"
)

// Reference model parameters, all in minutes.
const (
	DefaultArrivalMean          = 5.0  // mean inter-arrival time
	DefaultPrimaryServiceMean   = 6.0  // mean service time at WS1
	DefaultSecondaryServiceMean = 8.0  // mean service time at WS2
	DefaultWarmup               = 20.0 // warmup prepended to every run
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Thresholds groups the two queue-length thresholds of the hysteresis policy.
type Thresholds struct {
	Activate   int // x: enable WS2 when the WS1 queue is at or above this length
	Deactivate int // y: disable WS2 when the WS1 queue drops below this length
}

// ServiceConfig groups the stochastic model parameters (means, in minutes).
type ServiceConfig struct {
	ArrivalMean          float64 // mean inter-arrival time (must be > 0)
	PrimaryServiceMean   float64 // mean WS1 service time (must be > 0)
	SecondaryServiceMean float64 // mean WS2 service time (must be > 0)
}

// HorizonConfig groups the run length parameters (in minutes).
type HorizonConfig struct {
	Warmup         float64 // excluded from statistics (must be >= 0)
	SimulationTime float64 // post-warmup duration (must be > 0)
	DrainInFlight  bool    // let admitted entities finish after the horizon
}

// Config is the full input of one simulation run.
type Config struct {
	Thresholds Thresholds
	Service    ServiceConfig
	Horizon    HorizonConfig
	Seed       int64
	TraceLevel trace.TraceLevel // "" or "none" disables tracing
}

// NewThresholds creates a Thresholds from x (activate) and y (deactivate).
func NewThresholds(x, y int) Thresholds {
	return Thresholds{Activate: x, Deactivate: y}
}

// NewServiceConfig creates a ServiceConfig from the three means.
func NewServiceConfig(arrivalMean, primaryMean, secondaryMean float64) ServiceConfig {
	return ServiceConfig{
		ArrivalMean:          arrivalMean,
		PrimaryServiceMean:   primaryMean,
		SecondaryServiceMean: secondaryMean,
	}
}

// DefaultServiceConfig returns the reference model parameters.
func DefaultServiceConfig() ServiceConfig {
	return NewServiceConfig(DefaultArrivalMean, DefaultPrimaryServiceMean, DefaultSecondaryServiceMean)
}

// DefaultConfig returns a Config with the reference model parameters and the
// standard 20-minute warmup.
func DefaultConfig(x, y int, simulationTime float64) Config {
	return Config{
		Thresholds: NewThresholds(x, y),
		Service:    DefaultServiceConfig(),
		Horizon: HorizonConfig{
			Warmup:         DefaultWarmup,
			SimulationTime: simulationTime,
		},
	}
}

// EndTime returns the horizon: warmup plus the requested simulation time.
func (c Config) EndTime() float64 {
	return c.Horizon.Warmup + c.Horizon.SimulationTime
}

// Validate rejects configurations the kernel cannot run. It is called by
// NewSimulator, so a Simulator never starts with an invalid Config.
func (c Config) Validate() error {
	x, y := c.Thresholds.Activate, c.Thresholds.Deactivate
	if y <= 0 {
		return fmt.Errorf("%w: deactivate threshold y must be > 0, got %d", ErrInvalidConfig, y)
	}
	if x <= y {
		return fmt.Errorf("%w: activate threshold x must be > y, got x=%d y=%d", ErrInvalidConfig, x, y)
	}
	if err := positiveFinite("arrival mean", c.Service.ArrivalMean); err != nil {
		return err
	}
	if err := positiveFinite("primary service mean", c.Service.PrimaryServiceMean); err != nil {
		return err
	}
	if err := positiveFinite("secondary service mean", c.Service.SecondaryServiceMean); err != nil {
		return err
	}
	if err := positiveFinite("simulation time", c.Horizon.SimulationTime); err != nil {
		return err
	}
	if c.Horizon.Warmup < 0 || math.IsNaN(c.Horizon.Warmup) || math.IsInf(c.Horizon.Warmup, 0) {
		return fmt.Errorf("%w: warmup must be a finite value >= 0, got %v", ErrInvalidConfig, c.Horizon.Warmup)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfig, c.TraceLevel)
	}
	return nil
}

func positiveFinite(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite value > 0, got %v", ErrInvalidConfig, name, v)
	}
	return nil
}
