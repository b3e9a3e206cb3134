package metrics

import "strconv"

// Columns lists the metric table header, index column first.
var Columns = []string{"time", "income", "active_cases", "deaths", "immune", "susceptible", "in_store", "queued"}

// Table is an ordered series of records keyed by sampling time.
type Table struct {
	records []Record
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{records: make([]Record, 0)}
}

// Append adds a record at the end of the table.
func (t *Table) Append(r Record) {
	t.records = append(t.records, r)
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the table contents. Callers MUST NOT modify the slice.
func (t *Table) Records() []Record {
	return t.records
}

// Last returns the most recent record.
func (t *Table) Last() (Record, bool) {
	if len(t.records) == 0 {
		return Record{}, false
	}
	return t.records[len(t.records)-1], true
}

// row renders r in Columns order.
func row(r Record) []string {
	return []string{
		strconv.FormatInt(r.Time, 10),
		strconv.FormatInt(r.Income, 10),
		strconv.Itoa(r.ActiveCases),
		strconv.Itoa(r.Deaths),
		strconv.Itoa(r.Immune),
		strconv.Itoa(r.Susceptible),
		strconv.Itoa(r.InStore),
		strconv.Itoa(r.Queued),
	}
}
