// Package testutil provides shared assertion helpers for engine traces and
// metric tables used across sim/ test packages.
package testutil

import (
	"math"
	"testing"

	"github.com/inference-sim/storesim/sim/metrics"
	"github.com/inference-sim/storesim/sim/trace"
)

// AssertPoolBounded checks that no pool record shows more slots in use than
// capacity.
func AssertPoolBounded(t *testing.T, st *trace.SimulationTrace, capacity int) {
	t.Helper()
	for _, r := range st.Records {
		if r.Pool != "" && r.InUse > capacity {
			t.Errorf("[tick %d] pool %s: in_use=%d exceeds capacity %d (%s by %s)",
				r.Clock, r.Pool, r.InUse, capacity, r.Kind, r.Process)
		}
	}
}

// AssertFIFOGrants checks, per pool, that processes which had to wait were
// granted in the order they were enqueued. It returns the number of waits
// seen so callers can require that contention actually happened.
func AssertFIFOGrants(t *testing.T, st *trace.SimulationTrace) int {
	t.Helper()
	queues := map[string][]int{}
	waits := 0
	for _, r := range st.Records {
		switch r.Kind {
		case trace.KindEnqueue:
			queues[r.Pool] = append(queues[r.Pool], r.ProcessID)
			waits++
		case trace.KindGrant:
			q := queues[r.Pool]
			if !contains(q, r.ProcessID) {
				continue // granted without waiting
			}
			if len(q) == 0 || q[0] != r.ProcessID {
				t.Errorf("[tick %d] pool %s: granted %d (%s) but queue head is %v",
					r.Clock, r.Pool, r.ProcessID, r.Process, q)
				queues[r.Pool] = remove(q, r.ProcessID)
				continue
			}
			queues[r.Pool] = q[1:]
		}
	}
	return waits
}

// AssertNoRecordsAfterTerminate checks that a terminated process never
// appears in a later record.
func AssertNoRecordsAfterTerminate(t *testing.T, st *trace.SimulationTrace) {
	t.Helper()
	terminated := map[int]int64{}
	for _, r := range st.Records {
		if at, dead := terminated[r.ProcessID]; dead {
			t.Errorf("[tick %d] process %d (%s) recorded %s after terminating at %d",
				r.Clock, r.ProcessID, r.Process, r.Kind, at)
		}
		if r.Kind == trace.KindTerminate {
			terminated[r.ProcessID] = r.Clock
		}
	}
}

// AssertTableConserved checks that every row accounts for the whole
// population, never overfills the store, and keeps deaths cumulative.
func AssertTableConserved(t *testing.T, table *metrics.Table, population, capacity int) {
	t.Helper()
	prevDeaths := 0
	for _, r := range table.Records() {
		if total := r.Susceptible + r.ActiveCases + r.Immune + r.Deaths; total != population {
			t.Errorf("t=%d: states sum to %d, want %d", r.Time, total, population)
		}
		if r.InStore > capacity {
			t.Errorf("t=%d: in_store=%d exceeds capacity %d", r.Time, r.InStore, capacity)
		}
		if r.Deaths < prevDeaths {
			t.Errorf("t=%d: deaths fell from %d to %d", r.Time, prevDeaths, r.Deaths)
		}
		prevDeaths = r.Deaths
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

func contains(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func remove(ids []int, id int) []int {
	out := make([]int, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
