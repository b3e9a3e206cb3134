package trace

import (
	"testing"
)

func TestNewSimulationTrace_LevelNone_ReturnsNil(t *testing.T) {
	// GIVEN tracing disabled
	// WHEN a trace is created
	// THEN no trace is allocated
	if st := NewSimulationTrace(TraceConfig{Level: TraceLevelNone}); st != nil {
		t.Errorf("expected nil trace for level none, got %+v", st)
	}
	if st := NewSimulationTrace(TraceConfig{}); st != nil {
		t.Errorf("expected nil trace for empty level, got %+v", st)
	}
}

func TestSimulationTrace_Record_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for engine decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEngine})

	// WHEN a grant record is recorded
	st.Record(EngineRecord{Clock: 5, Kind: KindGrant, ProcessID: 2, Process: "B", Pool: "store", InUse: 1})

	// THEN the trace contains one record with correct data
	if len(st.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(st.Records))
	}
	if st.Records[0].Process != "B" || st.Records[0].Clock != 5 {
		t.Errorf("unexpected record %+v", st.Records[0])
	}
}

func TestSimulationTrace_ResumeRecords_OnlyAtEventsLevel(t *testing.T) {
	// GIVEN one trace at engine level and one at events level
	engine := NewSimulationTrace(TraceConfig{Level: TraceLevelEngine})
	events := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN the same resume record is offered to both
	r := EngineRecord{Clock: 1, Kind: KindResume, ProcessID: 1}
	engine.Record(r)
	events.Record(r)

	// THEN only the events-level trace keeps it
	if len(engine.Records) != 0 {
		t.Errorf("engine level kept %d resume records, want 0", len(engine.Records))
	}
	if len(events.Records) != 1 {
		t.Errorf("events level kept %d resume records, want 1", len(events.Records))
	}
}

func TestSimulationTrace_ForProcessAndOfKind_PreserveOrder(t *testing.T) {
	// GIVEN a trace with interleaved records
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEngine})
	st.Record(EngineRecord{Clock: 0, Kind: KindSpawn, ProcessID: 1})
	st.Record(EngineRecord{Clock: 0, Kind: KindSpawn, ProcessID: 2})
	st.Record(EngineRecord{Clock: 0, Kind: KindGrant, ProcessID: 1})
	st.Record(EngineRecord{Clock: 5, Kind: KindRelease, ProcessID: 1})
	st.Record(EngineRecord{Clock: 5, Kind: KindGrant, ProcessID: 2})

	// WHEN filtered
	p1 := st.ForProcess(1)
	grants := st.OfKind(KindGrant)

	// THEN recording order is preserved
	if len(p1) != 3 || p1[0].Kind != KindSpawn || p1[2].Kind != KindRelease {
		t.Errorf("ForProcess(1) = %+v", p1)
	}
	if len(grants) != 2 || grants[0].ProcessID != 1 || grants[1].ProcessID != 2 {
		t.Errorf("OfKind(grant) = %+v", grants)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"engine", true},
		{"events", true},
		{"", true},
		{"decisions", false},
		{"verbose", false},
	}
	for _, tc := range tests {
		if got := IsValidTraceLevel(tc.level); got != tc.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tc.level, got, tc.valid)
		}
	}
}
