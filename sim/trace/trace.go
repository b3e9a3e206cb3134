package trace

// TraceLevel controls the verbosity of engine tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEngine captures spawns, terminations and every pool decision.
	TraceLevelEngine TraceLevel = "engine"
	// TraceLevelEvents additionally captures every process resumption.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEngine: true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects engine records during a run.
type SimulationTrace struct {
	Config  TraceConfig
	Records []EngineRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
// Returns nil for TraceLevelNone so callers can pass the result straight
// into the simulator.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	if config.Level == TraceLevelNone || config.Level == "" {
		return nil
	}
	return &SimulationTrace{
		Config:  config,
		Records: make([]EngineRecord, 0),
	}
}

// Record appends a record. Resume records are dropped below TraceLevelEvents.
func (st *SimulationTrace) Record(r EngineRecord) {
	if r.Kind == KindResume && st.Config.Level != TraceLevelEvents {
		return
	}
	st.Records = append(st.Records, r)
}

// ForProcess returns the records of one process in recording order.
func (st *SimulationTrace) ForProcess(id int) []EngineRecord {
	var out []EngineRecord
	if st == nil {
		return out
	}
	for _, r := range st.Records {
		if r.ProcessID == id {
			out = append(out, r)
		}
	}
	return out
}

// OfKind returns the records of the given kind in recording order.
func (st *SimulationTrace) OfKind(kind Kind) []EngineRecord {
	var out []EngineRecord
	if st == nil {
		return out
	}
	for _, r := range st.Records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
