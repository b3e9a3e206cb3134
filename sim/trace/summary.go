package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Spawns        int
	Terminations  int
	Resumes       int
	Enqueues      int
	Grants        int
	Releases      int
	MaxQueueDepth int
	MeanWait      float64
	MaxWait       int64
	GrantsByPool  map[string]int // pool name → number of grants
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		GrantsByPool: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	var totalWait int64
	for _, r := range st.Records {
		switch r.Kind {
		case KindSpawn:
			summary.Spawns++
		case KindTerminate:
			summary.Terminations++
		case KindResume:
			summary.Resumes++
		case KindEnqueue:
			summary.Enqueues++
			if r.Waiting > summary.MaxQueueDepth {
				summary.MaxQueueDepth = r.Waiting
			}
		case KindGrant:
			summary.Grants++
			summary.GrantsByPool[r.Pool]++
			totalWait += r.Wait
			if r.Wait > summary.MaxWait {
				summary.MaxWait = r.Wait
			}
		case KindRelease:
			summary.Releases++
		}
	}
	if summary.Grants > 0 {
		summary.MeanWait = float64(totalWait) / float64(summary.Grants)
	}

	return summary
}
