// Tracks per-run outcomes: time-in-system and queue-wait samples of
// post-warmup entities, plus run-wide counters.

package sim

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoEntities signals that no entity arriving after the warmup departed
// before the run ended. Callers must handle it; there is no meaningful mean.
var ErrNoEntities = errors.New("no entities processed after warm-up")

// Metrics accumulates the outcomes of one run.
// Samples are only appended for entities whose arrival time is at or after
// the warmup cutoff; earlier entities still contend for the servers.
type Metrics struct {
	TimeInSystem []float64      // departure - arrival, per recorded entity
	QueueWaits   []float64      // grant - request, per recorded entity
	ServedBy     map[string]int // server name → recorded departures

	TotalArrivals  int // every admitted entity, warmup included
	WarmupArrivals int // admitted before the warmup cutoff

	Activations          int     // SecondaryDisabled → SecondaryEnabled transitions
	Deactivations        int     // SecondaryEnabled → SecondaryDisabled transitions
	SecondaryEnabledTime float64 // post-warmup minutes with WS2 enabled
	SimEndedTime         float64 // clock value when the run stopped
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		TimeInSystem: make([]float64, 0),
		QueueWaits:   make([]float64, 0),
		ServedBy:     make(map[string]int),
	}
}

// Record adds a departed entity's outcome if it arrived at or after warmup.
// Returns whether the entity was recorded.
func (m *Metrics) Record(e *Entity, warmup float64) bool {
	if e.State != StateDeparted {
		panic(fmt.Sprintf("Record: entity %s has not departed (state %s)", e.ID, e.State))
	}
	if e.ArrivalTime < warmup {
		return false
	}
	m.TimeInSystem = append(m.TimeInSystem, e.TimeInSystem())
	m.QueueWaits = append(m.QueueWaits, e.QueueWait)
	m.ServedBy[e.Server.Name]++
	return true
}

// Count returns the number of recorded entities.
func (m *Metrics) Count() int {
	return len(m.TimeInSystem)
}

// Summary holds the aggregates reported for one run. Durations are in minutes.
type Summary struct {
	Count                int     `json:"total_entities_processed"`
	MeanTimeInSystem     float64 `json:"average_time_in_system"`
	MinTimeInSystem      float64 `json:"min_time_in_system"`
	MaxTimeInSystem      float64 `json:"max_time_in_system"`
	StdDevTimeInSystem   float64 `json:"stddev_time_in_system"`
	P50TimeInSystem      float64 `json:"p50_time_in_system"`
	P95TimeInSystem      float64 `json:"p95_time_in_system"`
	MeanQueueWait        float64 `json:"average_queue_time"`
	MaxQueueWait         float64 `json:"max_queue_time"`
	ThroughputPerHour    float64 `json:"throughput_per_hour"`
	ServedByPrimary      int     `json:"served_by_primary"`
	ServedBySecondary    int     `json:"served_by_secondary"`
	Activations          int     `json:"activations"`
	Deactivations        int     `json:"deactivations"`
	SecondaryEnabledFrac float64 `json:"secondary_enabled_fraction"`
	TotalArrivals        int     `json:"total_arrivals"`
}

// Summarize computes the aggregates. simulationTime is the requested
// post-warmup duration used for throughput; observed is the post-warmup time
// the clock actually covered, used for the secondary-enabled fraction.
// Returns ErrNoEntities if nothing was recorded.
func (m *Metrics) Summarize(simulationTime, observed float64) (*Summary, error) {
	n := m.Count()
	if n == 0 {
		return nil, ErrNoEntities
	}

	sorted := make([]float64, n)
	copy(sorted, m.TimeInSystem)
	sort.Float64s(sorted)

	s := &Summary{
		Count:             n,
		MeanTimeInSystem:  stat.Mean(m.TimeInSystem, nil),
		MinTimeInSystem:   floats.Min(m.TimeInSystem),
		MaxTimeInSystem:   floats.Max(m.TimeInSystem),
		P50TimeInSystem:   CalculatePercentile(sorted, 50),
		P95TimeInSystem:   CalculatePercentile(sorted, 95),
		MeanQueueWait:     stat.Mean(m.QueueWaits, nil),
		MaxQueueWait:      floats.Max(m.QueueWaits),
		ThroughputPerHour: float64(n) / (simulationTime / 60),
		ServedByPrimary:   m.ServedBy[PrimaryName],
		ServedBySecondary: m.ServedBy[SecondaryName],
		Activations:       m.Activations,
		Deactivations:     m.Deactivations,
		TotalArrivals:     m.TotalArrivals,
	}
	if n > 1 {
		s.StdDevTimeInSystem = stat.StdDev(m.TimeInSystem, nil)
	}
	if observed > 0 {
		s.SecondaryEnabledFrac = m.SecondaryEnabledTime / observed
	}
	return s, nil
}

// Print writes the plain-text results block.
func (s *Summary) Print(w io.Writer, x, y int, simulationTime float64) {
	fmt.Fprintf(w, "\nSimulation Results (x=%d, y=%d, sim_time=%g mins)\n", x, y, simulationTime)
	fmt.Fprintln(w, "Average Time in System:", s.MeanTimeInSystem)
	fmt.Fprintln(w, "Min Time in System:", s.MinTimeInSystem)
	fmt.Fprintln(w, "Max Time in System:", s.MaxTimeInSystem)
	fmt.Fprintln(w, "Average Queue Time:", s.MeanQueueWait)
	fmt.Fprintln(w, "Total Entities Processed (after warm-up):", s.Count)
}
