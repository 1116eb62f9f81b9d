package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	sim "github.com/inference-sim/hysteresis-sim/sim"
	"github.com/inference-sim/hysteresis-sim/sim/trace"
)

// Parameters echoes the run request.
type Parameters struct {
	X              int `json:"x"`
	Y              int `json:"y"`
	SimulationTime int `json:"simulation_time"`
}

// Results holds the reported aggregates, rounded to two decimals.
type Results struct {
	AverageTimeInSystem      float64 `json:"average_time_in_system"`
	MinTimeInSystem          float64 `json:"min_time_in_system"`
	MaxTimeInSystem          float64 `json:"max_time_in_system"`
	P95TimeInSystem          float64 `json:"p95_time_in_system"`
	AverageQueueTime         float64 `json:"average_queue_time"`
	TotalEntitiesProcessed   int     `json:"total_entities_processed"`
	ThroughputPerHour        float64 `json:"throughput_per_hour"`
	ServedByPrimary          int     `json:"served_by_ws1"`
	ServedBySecondary        int     `json:"served_by_ws2"`
	SecondaryEnabledFraction float64 `json:"ws2_enabled_fraction"`
}

// Report is the JSON document printed by `run --output json`.
type Report struct {
	RunID      string              `json:"run_id"`
	Seed       int64               `json:"seed"`
	Parameters Parameters          `json:"parameters"`
	Results    Results             `json:"results"`
	Summary    string              `json:"summary"`
	Trace      *trace.TraceSummary `json:"trace,omitempty"`
}

// newReport builds a Report from a finished run.
func newReport(runID string, cfg sim.Config, p Parameters, res *sim.Result) *Report {
	s := res.Summary
	r := &Report{
		RunID:      runID,
		Seed:       cfg.Seed,
		Parameters: p,
		Results: Results{
			AverageTimeInSystem:      sim.Round2(s.MeanTimeInSystem),
			MinTimeInSystem:          sim.Round2(s.MinTimeInSystem),
			MaxTimeInSystem:          sim.Round2(s.MaxTimeInSystem),
			P95TimeInSystem:          sim.Round2(s.P95TimeInSystem),
			AverageQueueTime:         sim.Round2(s.MeanQueueWait),
			TotalEntitiesProcessed:   s.Count,
			ThroughputPerHour:        sim.Round2(s.ThroughputPerHour),
			ServedByPrimary:          s.ServedByPrimary,
			ServedBySecondary:        s.ServedBySecondary,
			SecondaryEnabledFraction: sim.Round2(s.SecondaryEnabledFrac),
		},
	}
	if res.Trace != nil {
		r.Trace = trace.Summarize(res.Trace)
	}
	r.Summary = describe(p, r.Results)
	return r
}

// describe renders the prose summary of a run.
func describe(p Parameters, r Results) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Simulation completed with x=%d, y=%d over %d minutes.\n", p.X, p.Y, p.SimulationTime)
	sb.WriteString("Performance Summary:\n")
	fmt.Fprintf(&sb, "- Average time entities spent in the system: %.2f minutes\n", r.AverageTimeInSystem)
	fmt.Fprintf(&sb, "- Average queue waiting time: %.2f minutes\n", r.AverageQueueTime)
	fmt.Fprintf(&sb, "- System processed %d entities\n", r.TotalEntitiesProcessed)
	fmt.Fprintf(&sb, "- Throughput: %.2f entities per hour\n", r.ThroughputPerHour)
	fmt.Fprintf(&sb, "- Time in system ranged from %.2f to %.2f minutes\n", r.MinTimeInSystem, r.MaxTimeInSystem)
	fmt.Fprintf(&sb, "The system activated WS2 when the WS1 queue reached %d entities "+
		"and deactivated it when the queue dropped below %d entities.", p.X, p.Y)
	return sb.String()
}

// writeJSON prints the report as indented JSON.
func (r *Report) writeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
