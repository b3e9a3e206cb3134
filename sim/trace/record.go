// Package trace provides engine decision-trace recording for run analysis.
// This package has no dependencies on sim/: it stores pure data types.
package trace

// Kind names the engine decision captured by a record.
type Kind string

const (
	KindSpawn     Kind = "spawn"
	KindResume    Kind = "resume"
	KindEnqueue   Kind = "enqueue"
	KindGrant     Kind = "grant"
	KindRelease   Kind = "release"
	KindTerminate Kind = "terminate"
)

// EngineRecord captures a single scheduling or resource decision.
type EngineRecord struct {
	Clock     int64
	Kind      Kind
	ProcessID int
	Process   string
	Pool      string // empty for records not tied to a pool
	InUse     int    // pool slots in use after the decision
	Waiting   int    // pool wait-queue length after the decision
	Wait      int64  // grant only: ticks between request and grant
}
