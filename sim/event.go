package sim

import "container/heap"

// EventPriority breaks ties between events with the same timestamp.
// Lower values run first; within one priority, scheduling order decides.
type EventPriority int

const (
	// PriorityDefault is used for process resumptions and plain callbacks.
	PriorityDefault EventPriority = iota
	// PriorityObserve runs after every default event of the same tick,
	// including default events scheduled later during that tick.
	PriorityObserve
)

// Event is a pending continuation in the simulator's EventQueue.
// Exactly one of proc and fn is set: process events resume a suspended
// Process, plain events run a callback.
type Event struct {
	time     int64
	priority EventPriority
	seq      uint64
	proc     *Process
	fn       func()
}

// Timestamp returns the virtual time at which the event fires.
func (e *Event) Timestamp() int64 {
	return e.time
}

// Priority returns the same-tick ordering class of the event.
func (e *Event) Priority() EventPriority {
	return e.priority
}

// Seq returns the scheduling sequence number used to break timestamp ties.
func (e *Event) Seq() uint64 {
	return e.seq
}

// Process returns the process resumed by this event, or nil for callbacks.
func (e *Event) Process() *Process {
	return e.proc
}

// EventQueue implements heap.Interface with deterministic ordering.
// Order by: timestamp → priority → sequence number (first scheduled, first run).
type EventQueue struct {
	events  []*Event
	nextSeq uint64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{
		events: make([]*Event, 0),
	}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Less implements heap.Interface
func (q *EventQueue) Less(i, j int) bool {
	ei, ej := q.events[i], q.events[j]
	if ei.time != ej.time {
		return ei.time < ej.time
	}
	if ei.priority != ej.priority {
		return ei.priority < ej.priority
	}
	return ei.seq < ej.seq
}

// Swap implements heap.Interface
func (q *EventQueue) Swap(i, j int) {
	q.events[i], q.events[j] = q.events[j], q.events[i]
}

// Push implements heap.Interface
func (q *EventQueue) Push(x any) {
	q.events = append(q.events, x.(*Event))
}

// Pop implements heap.Interface
func (q *EventQueue) Pop() any {
	old := q.events
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.events = old[0 : n-1]
	return item
}

// push stamps ev with the next sequence number and inserts it.
func (q *EventQueue) push(ev *Event) *Event {
	q.nextSeq++
	ev.seq = q.nextSeq
	heap.Push(q, ev)
	return ev
}

// ScheduleFunc inserts a default-priority callback event at absolute time at.
func (q *EventQueue) ScheduleFunc(at int64, fn func()) *Event {
	return q.ScheduleFuncPriority(at, PriorityDefault, fn)
}

// ScheduleFuncPriority inserts a callback event at absolute time at with the
// given same-tick priority.
func (q *EventQueue) ScheduleFuncPriority(at int64, priority EventPriority, fn func()) *Event {
	if fn == nil {
		panic("ScheduleFunc: fn must not be nil")
	}
	return q.push(&Event{time: at, priority: priority, fn: fn})
}

// scheduleResume inserts an event that resumes p at absolute time at.
func (q *EventQueue) scheduleResume(at int64, p *Process) *Event {
	return q.push(&Event{time: at, proc: p})
}

// PopNext removes and returns the earliest event, or nil if the queue is empty.
func (q *EventQueue) PopNext() *Event {
	if q.Len() == 0 {
		return nil
	}
	return heap.Pop(q).(*Event)
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() *Event {
	if q.Len() == 0 {
		return nil
	}
	return q.events[0]
}
