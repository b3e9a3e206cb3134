// Package metrics aggregates population state into one record per sampling
// boundary and exports the resulting table.
package metrics

import "github.com/sirupsen/logrus"

// Snapshot is the population-wide state observed at one instant.
type Snapshot struct {
	Susceptible int
	Infected    int
	Immune      int
	Dead        int
	InStore     int // pool slots in use
	Queued      int // processes waiting for a slot
}

// Population returns the number of agents covered by the snapshot.
func (s Snapshot) Population() int {
	return s.Susceptible + s.Infected + s.Immune + s.Dead
}

// Record is one row of the metric table.
type Record struct {
	Time        int64 // sampling boundary
	Income      int64 // money spent since the previous boundary
	ActiveCases int
	Deaths      int // cumulative
	Immune      int
	Susceptible int
	InStore     int
	Queued      int
}

// Collector accumulates per-period quantities between samples and turns
// each sample into a Record. It is owned by a single run.
type Collector struct {
	periodIncome int64
	totalIncome  int64
	peakActive   int
	peakActiveAt int64
	trips        int
	table        *Table
}

// NewCollector creates a collector with an empty table.
func NewCollector() *Collector {
	return &Collector{table: NewTable()}
}

// AddIncome adds money spent during the current period.
func (c *Collector) AddIncome(amount int64) {
	c.periodIncome += amount
	c.totalIncome += amount
	c.trips++
}

// Sample appends a record for boundary now and resets the per-period
// accumulators.
func (c *Collector) Sample(now int64, snap Snapshot) Record {
	r := Record{
		Time:        now,
		Income:      c.periodIncome,
		ActiveCases: snap.Infected,
		Deaths:      snap.Dead,
		Immune:      snap.Immune,
		Susceptible: snap.Susceptible,
		InStore:     snap.InStore,
		Queued:      snap.Queued,
	}
	c.table.Append(r)
	c.periodIncome = 0
	if snap.Infected > c.peakActive {
		c.peakActive = snap.Infected
		c.peakActiveAt = now
	}
	logrus.Debugf("[tick %07d] Sample: income=%d active=%d deaths=%d immune=%d in_store=%d queued=%d",
		now, r.Income, r.ActiveCases, r.Deaths, r.Immune, r.InStore, r.Queued)
	return r
}

// Table returns the records sampled so far.
func (c *Collector) Table() *Table {
	return c.table
}

// Summary condenses the run into headline numbers.
func (c *Collector) Summary() Summary {
	s := Summary{
		Samples:      c.table.Len(),
		TotalIncome:  c.totalIncome,
		Trips:        c.trips,
		PeakActive:   c.peakActive,
		PeakActiveAt: c.peakActiveAt,
	}
	if last, ok := c.table.Last(); ok {
		s.Final = last
	}
	return s
}
