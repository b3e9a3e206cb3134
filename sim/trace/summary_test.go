package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	// GIVEN tracing was disabled
	// WHEN summarized
	summary := Summarize(nil)

	// THEN all counts are zero and the map is usable
	if summary.Grants != 0 || summary.Spawns != 0 || summary.MeanWait != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
	if summary.GrantsByPool == nil {
		t.Error("expected non-nil GrantsByPool")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace of two processes contending for a single slot
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEngine})
	st.Record(EngineRecord{Clock: 0, Kind: KindSpawn, ProcessID: 1})
	st.Record(EngineRecord{Clock: 0, Kind: KindGrant, ProcessID: 1, Pool: "store", InUse: 1})
	st.Record(EngineRecord{Clock: 0, Kind: KindSpawn, ProcessID: 2})
	st.Record(EngineRecord{Clock: 0, Kind: KindEnqueue, ProcessID: 2, Pool: "store", InUse: 1, Waiting: 1})
	st.Record(EngineRecord{Clock: 5, Kind: KindRelease, ProcessID: 1, Pool: "store"})
	st.Record(EngineRecord{Clock: 5, Kind: KindGrant, ProcessID: 2, Pool: "store", InUse: 1, Wait: 5})
	st.Record(EngineRecord{Clock: 5, Kind: KindTerminate, ProcessID: 1})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts and waits reflect the records
	if summary.Spawns != 2 || summary.Terminations != 1 {
		t.Errorf("spawns/terminations = %d/%d, want 2/1", summary.Spawns, summary.Terminations)
	}
	if summary.Grants != 2 || summary.Releases != 1 || summary.Enqueues != 1 {
		t.Errorf("grants/releases/enqueues = %d/%d/%d, want 2/1/1", summary.Grants, summary.Releases, summary.Enqueues)
	}
	if summary.MaxQueueDepth != 1 {
		t.Errorf("MaxQueueDepth = %d, want 1", summary.MaxQueueDepth)
	}
	if summary.MeanWait != 2.5 {
		t.Errorf("MeanWait = %v, want 2.5", summary.MeanWait)
	}
	if summary.MaxWait != 5 {
		t.Errorf("MaxWait = %d, want 5", summary.MaxWait)
	}
	if summary.GrantsByPool["store"] != 2 {
		t.Errorf("GrantsByPool[store] = %d, want 2", summary.GrantsByPool["store"])
	}
}
