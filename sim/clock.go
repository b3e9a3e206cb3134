package sim

import "fmt"

// Clock holds the current virtual time. Only the Simulator advances it.
type Clock struct {
	now int64
}

// Now returns the current virtual time.
func (c *Clock) Now() int64 {
	return c.now
}

// advanceTo moves the clock to t. Time never moves backward.
func (c *Clock) advanceTo(t int64) error {
	if t < c.now {
		return fmt.Errorf("%w: %d < %d", ErrBackwardClock, t, c.now)
	}
	c.now = t
	return nil
}
