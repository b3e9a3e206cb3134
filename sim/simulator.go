// sim/simulator.go
package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/inference-sim/storesim/sim/trace"
)

// NoHorizon lets Run continue until the event queue is exhausted.
const NoHorizon int64 = math.MaxInt64

// SimConfig groups the construction parameters of a Simulator.
type SimConfig struct {
	Horizon int64                  // last virtual time at which events still execute
	Trace   *trace.SimulationTrace // nil disables engine tracing
}

// Simulator is the core object that holds virtual time, the event queue,
// and the process lifecycle. It is strictly single-threaded: exactly one
// continuation runs at a time and nothing in here is safe for concurrent use.
type Simulator struct {
	clock   Clock
	queue   *EventQueue
	horizon int64

	nextPID ProcessID
	live    int
	current *Process // process whose behavior is executing, nil between events

	err      error // first fatal engine error; the run stops once set
	trace    *trace.SimulationTrace
	executed uint64
	progress rate.Sometimes
}

// NewSimulator creates a simulator at time 0 with an empty event queue.
func NewSimulator(cfg SimConfig) *Simulator {
	return &Simulator{
		queue:    NewEventQueue(),
		horizon:  cfg.Horizon,
		trace:    cfg.Trace,
		progress: rate.Sometimes{Interval: time.Second},
	}
}

// Now returns the current virtual time.
func (s *Simulator) Now() int64 { return s.clock.Now() }

// Horizon returns the configured horizon.
func (s *Simulator) Horizon() int64 { return s.horizon }

// Pending returns the number of events waiting in the queue.
func (s *Simulator) Pending() int { return s.queue.Len() }

// Live returns the number of started processes that have not terminated.
func (s *Simulator) Live() int { return s.live }

// Executed returns the number of events popped and executed so far.
func (s *Simulator) Executed() uint64 { return s.executed }

// Err returns the fatal error that stopped the run, if any.
func (s *Simulator) Err() error { return s.err }

// Trace returns the engine trace, or nil when tracing is disabled.
func (s *Simulator) Trace() *trace.SimulationTrace { return s.trace }

// Schedule runs fn after delay ticks. A negative delay, or one whose
// deadline does not fit in int64, is a fatal ErrInvalidDelay and fn is never
// scheduled.
func (s *Simulator) Schedule(delay int64, fn func()) error {
	return s.schedule(delay, PriorityDefault, fn)
}

// ScheduleObserver is Schedule for callbacks that must see the state left by
// every process resumed at the target tick, whenever those were scheduled.
func (s *Simulator) ScheduleObserver(delay int64, fn func()) error {
	return s.schedule(delay, PriorityObserve, fn)
}

func (s *Simulator) schedule(delay int64, priority EventPriority, fn func()) error {
	at, err := s.deadline(delay)
	if err != nil {
		s.fail(s.current, err)
		return err
	}
	s.queue.ScheduleFuncPriority(at, priority, fn)
	return nil
}

// deadline returns Now()+delay, rejecting negative delays and overflow.
func (s *Simulator) deadline(delay int64) (int64, error) {
	if delay < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDelay, delay)
	}
	if delay > math.MaxInt64-s.Now() {
		return 0, fmt.Errorf("%w: %d overflows virtual time at tick %d", ErrInvalidDelay, delay, s.Now())
	}
	return s.Now() + delay, nil
}

// Spawn creates a process running b and immediately runs it until its first
// suspension or termination. Spawning after a fatal error only registers the
// process: it is never started and is not counted by Live.
func (s *Simulator) Spawn(name string, b Behavior) *Process {
	if b == nil {
		panic("Spawn: behavior must not be nil")
	}
	s.nextPID++
	p := &Process{
		id:        s.nextPID,
		name:      name,
		state:     StateRunnable,
		behavior:  b,
		sim:       s,
		spawnedAt: s.Now(),
	}
	logrus.Debugf("[tick %07d] Spawned process %d (%s)", s.Now(), p.id, p.name)
	s.record(trace.KindSpawn, p, nil, 0)
	if s.err == nil {
		s.live++
		s.step(p)
	}
	return p
}

// Run executes events until the queue is exhausted or the next event lies
// beyond the configured horizon.
func (s *Simulator) Run() error {
	return s.RunUntil(s.horizon)
}

// RunUntil executes every event whose time is <= horizon. When it stops
// because of the horizon the clock is moved to the horizon itself. It returns
// the first fatal engine error, if any.
func (s *Simulator) RunUntil(horizon int64) error {
	for s.err == nil {
		ev := s.queue.Peek()
		if ev == nil {
			break
		}
		if ev.time > horizon {
			if horizon > s.Now() {
				s.clock.now = horizon
			}
			break
		}
		s.queue.PopNext()
		if err := s.clock.advanceTo(ev.time); err != nil {
			s.fail(ev.proc, err)
			break
		}
		s.executed++
		s.dispatch(ev)
		s.progress.Do(func() {
			logrus.Infof("[tick %07d] %d events executed, %d pending, %d live processes",
				s.Now(), s.executed, s.queue.Len(), s.live)
		})
	}
	if s.err != nil {
		return s.err
	}
	logrus.Debugf("[tick %07d] Simulation stopped after %d events", s.Now(), s.executed)
	return nil
}

func (s *Simulator) dispatch(ev *Event) {
	if ev.proc == nil {
		logrus.Tracef("[tick %07d] Executing callback #%d", s.Now(), ev.seq)
		ev.fn()
		return
	}
	logrus.Tracef("[tick %07d] Resuming process %d (%s)", s.Now(), ev.proc.id, ev.proc.name)
	s.record(trace.KindResume, ev.proc, nil, 0)
	s.step(ev.proc)
}

// step runs p until it suspends or terminates and converts the suspension
// request into queue or pool state.
func (s *Simulator) step(p *Process) {
	for {
		if p.state == StateTerminated {
			s.fail(p, ErrTerminated)
			return
		}
		p.state = StateRunnable

		prev := s.current
		s.current = p
		y := p.behavior.Resume(p)
		s.current = prev

		if s.err != nil {
			return
		}

		switch y.kind {
		case yieldTimeout:
			at, err := s.deadline(y.delay)
			if err != nil {
				s.fail(p, err)
				return
			}
			p.state = StateSuspended
			s.queue.scheduleResume(at, p)
			return
		case yieldAcquire:
			if y.pool.sim != s {
				panic(fmt.Sprintf("Acquire: pool %s belongs to another simulator", y.pool.name))
			}
			if y.pool.acquire(p) {
				continue
			}
			p.state = StateSuspended
			return
		default:
			s.terminate(p)
			return
		}
	}
}

func (s *Simulator) terminate(p *Process) {
	if p.held > 0 {
		s.fail(p, fmt.Errorf("%w: %d slot(s) still held", ErrLeakedSlot, p.held))
		return
	}
	p.state = StateTerminated
	p.behavior = nil
	p.endedAt = s.Now()
	s.live--
	logrus.Debugf("[tick %07d] Terminated process %d (%s)", s.Now(), p.id, p.name)
	s.record(trace.KindTerminate, p, nil, 0)
}

// fail records the first fatal error of the run.
func (s *Simulator) fail(p *Process, err error) {
	if s.err != nil {
		return
	}
	e := &Error{Time: s.Now(), Err: err}
	if p != nil {
		e.ProcessID = p.id
		e.Process = p.name
	}
	s.err = e
	logrus.Errorf("%v", e)
}

func (s *Simulator) record(kind trace.Kind, p *Process, pool *ResourcePool, wait int64) {
	if s.trace == nil {
		return
	}
	r := trace.EngineRecord{
		Clock:     s.Now(),
		Kind:      kind,
		ProcessID: int(p.id),
		Process:   p.name,
		Wait:      wait,
	}
	if pool != nil {
		r.Pool = pool.name
		r.InUse = pool.inUse
		r.Waiting = len(pool.waiters)
	}
	s.trace.Record(r)
}
