package sim

import "fmt"

// ProcessID identifies a process within one Simulator. IDs start at 1.
type ProcessID int

// ProcessState represents the lifecycle state of a process.
type ProcessState int

const (
	StateRunnable ProcessState = iota
	StateSuspended
	StateTerminated
)

func (s ProcessState) String() string {
	switch s {
	case StateRunnable:
		return "runnable"
	case StateSuspended:
		return "suspended"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("ProcessState(%d)", int(s))
	}
}

// Behavior is the resumable continuation of a process.
//
// Resume runs the behavior from where it last suspended until the next
// suspension point and reports that point as a Yield. All state the behavior
// needs across suspensions lives in the implementing value, typically a
// small state machine keyed on a phase field.
type Behavior interface {
	Resume(p *Process) Yield
}

// BehaviorFunc adapts an ordinary function to the Behavior interface.
type BehaviorFunc func(p *Process) Yield

// Resume calls f(p).
func (f BehaviorFunc) Resume(p *Process) Yield {
	return f(p)
}

type yieldKind int

const (
	yieldExit yieldKind = iota
	yieldTimeout
	yieldAcquire
)

// Yield is the suspension request a behavior hands back to the scheduler.
// The zero Yield terminates the process.
type Yield struct {
	kind  yieldKind
	delay int64
	pool  *ResourcePool
}

// Timeout suspends the process for delay ticks.
func Timeout(delay int64) Yield {
	return Yield{kind: yieldTimeout, delay: delay}
}

// Acquire suspends the process until it holds a slot of pool. If a slot is
// free the process continues immediately without an intervening event.
func Acquire(pool *ResourcePool) Yield {
	if pool == nil {
		panic("Acquire: pool must not be nil")
	}
	return Yield{kind: yieldAcquire, pool: pool}
}

// Exit terminates the process. Any slot it holds must already be released.
func Exit() Yield {
	return Yield{kind: yieldExit}
}

func (y Yield) String() string {
	switch y.kind {
	case yieldTimeout:
		return fmt.Sprintf("timeout(%d)", y.delay)
	case yieldAcquire:
		return fmt.Sprintf("acquire(%s)", y.pool.name)
	default:
		return "exit"
	}
}

// Process is one cooperatively scheduled unit of behavior. It is owned by
// the Simulator that spawned it for its whole lifetime.
type Process struct {
	id        ProcessID
	name      string
	state     ProcessState
	behavior  Behavior
	sim       *Simulator
	held      int   // slots held across all pools
	spawnedAt int64 // clock at spawn
	endedAt   int64 // clock at termination
}

// ID returns the process identifier.
func (p *Process) ID() ProcessID { return p.id }

// Name returns the name given at spawn.
func (p *Process) Name() string { return p.name }

// State returns the current lifecycle state.
func (p *Process) State() ProcessState { return p.state }

// Now returns the owning simulator's clock.
func (p *Process) Now() int64 { return p.sim.Now() }

// Simulator returns the simulator that owns p.
func (p *Process) Simulator() *Simulator { return p.sim }

// Held returns the number of pool slots p currently holds.
func (p *Process) Held() int { return p.held }

// SpawnedAt returns the virtual time at which p was spawned.
func (p *Process) SpawnedAt() int64 { return p.spawnedAt }

// EndedAt returns the virtual time at which p terminated. Only meaningful
// once State() is StateTerminated.
func (p *Process) EndedAt() int64 { return p.endedAt }

func (p *Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, Name: %s, State: %s)", p.id, p.name, p.state)
}
