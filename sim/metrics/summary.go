package metrics

import (
	"fmt"
	"io"
)

// Summary holds the headline numbers of a run.
type Summary struct {
	Samples      int
	TotalIncome  int64
	Trips        int
	PeakActive   int
	PeakActiveAt int64
	Final        Record

	// Store contention, filled in by the model that owns the pool.
	StoreGrants   int
	MeanWait      float64
	MaxQueueDepth int
}

// Print writes a human-readable summary to w.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Summary ===")
	fmt.Fprintf(w, "Samples              : %d\n", s.Samples)
	fmt.Fprintf(w, "Shopping Trips       : %d\n", s.Trips)
	fmt.Fprintf(w, "Total Income         : %d\n", s.TotalIncome)
	fmt.Fprintf(w, "Peak Active Cases    : %d (t=%d)\n", s.PeakActive, s.PeakActiveAt)
	fmt.Fprintf(w, "Final Active Cases   : %d\n", s.Final.ActiveCases)
	fmt.Fprintf(w, "Final Deaths         : %d\n", s.Final.Deaths)
	fmt.Fprintf(w, "Final Immune         : %d\n", s.Final.Immune)
	fmt.Fprintf(w, "Final Susceptible    : %d\n", s.Final.Susceptible)
	if s.StoreGrants > 0 {
		fmt.Fprintf(w, "Store Grants         : %d\n", s.StoreGrants)
		fmt.Fprintf(w, "Mean Queue Wait      : %.2f\n", s.MeanWait)
		fmt.Fprintf(w, "Max Queue Depth      : %d\n", s.MaxQueueDepth)
	}
}
