package metrics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Sample_ResetsPeriodIncome(t *testing.T) {
	// GIVEN a collector with income in the first period
	c := NewCollector()
	c.AddIncome(30)
	c.AddIncome(12)

	// WHEN two boundaries are sampled with income only before the first
	r1 := c.Sample(1, Snapshot{Susceptible: 10})
	r2 := c.Sample(2, Snapshot{Susceptible: 10})

	// THEN the first row carries the income and the second starts from zero
	assert.Equal(t, int64(42), r1.Income)
	assert.Equal(t, int64(0), r2.Income)
	assert.Equal(t, 2, c.Table().Len())
}

func TestCollector_Sample_CopiesSnapshotCounts(t *testing.T) {
	c := NewCollector()
	r := c.Sample(7, Snapshot{Susceptible: 5, Infected: 3, Immune: 2, Dead: 1, InStore: 4, Queued: 6})
	assert.Equal(t, Record{Time: 7, ActiveCases: 3, Deaths: 1, Immune: 2, Susceptible: 5, InStore: 4, Queued: 6}, r)
}

func TestCollector_Summary_TracksPeakAndTotals(t *testing.T) {
	// GIVEN a short epidemic curve
	c := NewCollector()
	c.AddIncome(10)
	c.Sample(0, Snapshot{Susceptible: 9, Infected: 1})
	c.AddIncome(20)
	c.Sample(1, Snapshot{Susceptible: 6, Infected: 4})
	c.Sample(2, Snapshot{Susceptible: 6, Infected: 2, Immune: 1, Dead: 1})

	// WHEN summarized
	s := c.Summary()

	// THEN totals and the peak are reported
	assert.Equal(t, 3, s.Samples)
	assert.Equal(t, int64(30), s.TotalIncome)
	assert.Equal(t, 2, s.Trips)
	assert.Equal(t, 4, s.PeakActive)
	assert.Equal(t, int64(1), s.PeakActiveAt)
	assert.Equal(t, 1, s.Final.Deaths)

	var buf bytes.Buffer
	s.Print(&buf)
	assert.Contains(t, buf.String(), "Simulation Summary")
	assert.Contains(t, buf.String(), "Peak Active Cases    : 4 (t=1)")
}

func TestSnapshot_Population(t *testing.T) {
	s := Snapshot{Susceptible: 5, Infected: 3, Immune: 2, Dead: 1, InStore: 9, Queued: 9}
	assert.Equal(t, 11, s.Population())
}

func TestTable_Last(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.Last()
	require.False(t, ok)
	tbl.Append(Record{Time: 1})
	tbl.Append(Record{Time: 2})
	last, ok := tbl.Last()
	require.True(t, ok)
	assert.Equal(t, int64(2), last.Time)
}

func TestSummary_Print_StoreContentionOnlyWhenGranted(t *testing.T) {
	var without, with bytes.Buffer

	Summary{}.Print(&without)
	Summary{StoreGrants: 12, MeanWait: 1.5, MaxQueueDepth: 4}.Print(&with)

	assert.NotContains(t, without.String(), "Store Grants")
	assert.Contains(t, with.String(), "Store Grants         : 12")
	assert.Contains(t, with.String(), "Mean Queue Wait      : 1.50")
	assert.Contains(t, with.String(), "Max Queue Depth      : 4")
}
