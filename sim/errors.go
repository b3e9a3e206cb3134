package sim

import (
	"errors"
	"fmt"
)

// Engine contract violations. Each one is fatal for the run in which it
// occurs: Run stops and returns it wrapped in an *Error.
var (
	ErrInvalidDelay    = errors.New("invalid delay")
	ErrInvalidCapacity = errors.New("invalid capacity")
	ErrDoubleRelease   = errors.New("release without a held slot")
	ErrBackwardClock   = errors.New("clock moved backwards")
	ErrLeakedSlot      = errors.New("process terminated while holding a slot")
	ErrTerminated      = errors.New("process already terminated")
)

// Error identifies the process and virtual time at which an engine
// violation happened. ProcessID is zero when no process was running.
type Error struct {
	Time      int64
	ProcessID ProcessID
	Process   string
	Err       error
}

func (e *Error) Error() string {
	if e.ProcessID == 0 {
		return fmt.Sprintf("[tick %07d] %v", e.Time, e.Err)
	}
	return fmt.Sprintf("[tick %07d] process %d (%s): %v", e.Time, e.ProcessID, e.Process, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
