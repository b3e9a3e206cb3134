// Package sim provides the discrete-event simulation engine for storesim.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - event.go: the EventQueue, ordered by (time, sequence) so that events
//     sharing a timestamp run in the order they were scheduled
//   - process.go: Process, the Behavior continuation and the Yield vocabulary
//     (Timeout, Acquire, Exit)
//   - simulator.go: the event loop, Spawn and process lifecycle
//   - resource.go: ResourcePool, a bounded-capacity facility with FIFO waiting
//
// # Execution Model
//
// Everything runs on the caller's goroutine. A behavior runs until it returns
// a Yield; the Simulator turns that Yield into a future event (Timeout), a
// queued AcquireRequest (Acquire on a full pool) or a terminated process
// (Exit). Agent computation between two yields is therefore atomic with
// respect to every other process, and a run is fully determined by its
// configuration, its seed and its spawn order.
//
// Contract violations (negative delays, double releases, leaked slots,
// backward clocks) abort the run: Run returns an *Error naming the process
// and tick at which the violation happened.
//
// Sub-packages:
//   - sim/trace/: optional engine decision trace
//   - sim/population/: the agent model (shoppers, infection, recovery)
//   - sim/metrics/: periodic aggregation and tabular export
package sim
