package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/storesim/sim/trace"
)

// AcquireRequest is a process waiting for a slot. The pool owns it while it
// is queued.
type AcquireRequest struct {
	Process    *Process
	EnqueuedAt int64
}

// ResourcePool is a bounded-capacity shared facility with a strict FIFO wait
// queue. A waiter that arrived earlier is never granted after one that
// arrived later.
type ResourcePool struct {
	sim      *Simulator
	name     string
	capacity int
	inUse    int
	holders  []*Process        // current holders in grant order
	waiters  []*AcquireRequest // FIFO queue of pending acquisitions

	grants    int
	totalWait int64
	maxQueue  int
}

// NewResourcePool creates a pool with capacity slots bound to s.
func NewResourcePool(s *Simulator, name string, capacity int) (*ResourcePool, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("pool %s: %w: %d", name, ErrInvalidCapacity, capacity)
	}
	return &ResourcePool{
		sim:      s,
		name:     name,
		capacity: capacity,
		holders:  make([]*Process, 0, capacity),
		waiters:  make([]*AcquireRequest, 0),
	}, nil
}

// Name returns the pool name.
func (r *ResourcePool) Name() string { return r.name }

// Capacity returns the number of slots.
func (r *ResourcePool) Capacity() int { return r.capacity }

// InUse returns the number of granted slots, including grants whose
// holder has not been resumed yet.
func (r *ResourcePool) InUse() int { return r.inUse }

// QueueLen returns the number of waiting acquire requests.
func (r *ResourcePool) QueueLen() int { return len(r.waiters) }

// Grants returns the total number of grants so far.
func (r *ResourcePool) Grants() int { return r.grants }

// MaxQueueLen returns the deepest the wait queue has been.
func (r *ResourcePool) MaxQueueLen() int { return r.maxQueue }

// MeanWait returns the average time between request and grant, in ticks.
func (r *ResourcePool) MeanWait() float64 {
	if r.grants == 0 {
		return 0
	}
	return float64(r.totalWait) / float64(r.grants)
}

// Holders returns the processes currently holding a slot, in grant order.
// The returned slice is a copy.
func (r *ResourcePool) Holders() []*Process {
	out := make([]*Process, len(r.holders))
	copy(out, r.holders)
	return out
}

// Holds reports whether p currently holds at least one slot.
func (r *ResourcePool) Holds(p *Process) bool {
	return r.holderIndex(p) >= 0
}

// Waiters returns a copy of the wait queue, head first.
func (r *ResourcePool) Waiters() []AcquireRequest {
	out := make([]AcquireRequest, len(r.waiters))
	for i, w := range r.waiters {
		out[i] = *w
	}
	return out
}

// acquire grants a free slot to p synchronously and returns true, or queues
// p behind the current waiters and returns false.
func (r *ResourcePool) acquire(p *Process) bool {
	now := r.sim.Now()
	if r.inUse < r.capacity {
		r.grant(p, now)
		return true
	}
	r.waiters = append(r.waiters, &AcquireRequest{Process: p, EnqueuedAt: now})
	if len(r.waiters) > r.maxQueue {
		r.maxQueue = len(r.waiters)
	}
	logrus.Tracef("[tick %07d] %s: process %d queued (%d waiting)", now, r.name, p.id, len(r.waiters))
	r.sim.record(trace.KindEnqueue, p, r, 0)
	return false
}

func (r *ResourcePool) grant(p *Process, enqueuedAt int64) {
	now := r.sim.Now()
	r.inUse++
	r.holders = append(r.holders, p)
	p.held++
	wait := now - enqueuedAt
	r.grants++
	r.totalWait += wait
	logrus.Tracef("[tick %07d] %s: granted to process %d after %d ticks (%d/%d in use)",
		now, r.name, p.id, wait, r.inUse, r.capacity)
	r.sim.record(trace.KindGrant, p, r, wait)
}

// Release returns the slot held by p. If processes are waiting, the head
// waiter is granted the slot at once and resumed by an event at the current
// time, so it runs at the next scheduling step rather than inside Release.
// Releasing without a held slot is a fatal ErrDoubleRelease.
func (r *ResourcePool) Release(p *Process) error {
	idx := r.holderIndex(p)
	if idx < 0 {
		err := fmt.Errorf("%w: pool %s", ErrDoubleRelease, r.name)
		r.sim.fail(p, err)
		return err
	}
	r.holders = append(r.holders[:idx], r.holders[idx+1:]...)
	r.inUse--
	p.held--
	logrus.Tracef("[tick %07d] %s: released by process %d (%d/%d in use)", r.sim.Now(), r.name, p.id, r.inUse, r.capacity)
	r.sim.record(trace.KindRelease, p, r, 0)

	if len(r.waiters) == 0 {
		return nil
	}
	head := r.waiters[0]
	r.waiters[0] = nil
	r.waiters = r.waiters[1:]
	r.grant(head.Process, head.EnqueuedAt)
	r.sim.queue.scheduleResume(r.sim.Now(), head.Process)
	return nil
}

func (r *ResourcePool) holderIndex(p *Process) int {
	if p == nil {
		return -1
	}
	for i, h := range r.holders {
		if h == p {
			return i
		}
	}
	return -1
}

func (r *ResourcePool) String() string {
	return fmt.Sprintf("ResourcePool: (Name: %s, InUse: %d/%d, Waiting: %d)", r.name, r.inUse, r.capacity, len(r.waiters))
}
