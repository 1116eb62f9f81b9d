package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions     int            `json:"total_decisions"`
	Activations        int            `json:"activations"`
	Deactivations      int            `json:"deactivations"`
	MaxPrimaryQueue    int            `json:"max_primary_queue"` // longest primary queue seen by the router
	UniqueTargets      int            `json:"unique_targets"`
	TargetDistribution map[string]int `json:"target_distribution"` // server name → count of entities routed
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		TargetDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	for _, t := range st.Transitions {
		if t.Enabled {
			summary.Activations++
		} else {
			summary.Deactivations++
		}
	}

	summary.TotalDecisions = len(st.Routings)
	for _, r := range st.Routings {
		summary.TargetDistribution[r.Server]++
		if r.PrimaryQueue > summary.MaxPrimaryQueue {
			summary.MaxPrimaryQueue = r.PrimaryQueue
		}
	}

	summary.UniqueTargets = len(summary.TargetDistribution)

	return summary
}
