package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/rs/xid"
)

// Run identifies one simulation run in exported data.
type Run struct {
	ID     string
	Preset string
	Seed   int64
}

// NewRun stamps a fresh, globally unique run ID.
func NewRun(preset string, seed int64) Run {
	return Run{ID: xid.New().String(), Preset: preset, Seed: seed}
}

// Exporter writes a finished metric table somewhere durable.
type Exporter interface {
	Export(run Run, t *Table) error
	Close() error
}

// CSVExporter writes the table as comma-separated values with a header row.
type CSVExporter struct {
	w      io.Writer
	closer io.Closer
}

// NewCSVExporter writes to w. Close is a no-op.
func NewCSVExporter(w io.Writer) *CSVExporter {
	return &CSVExporter{w: w}
}

// CreateCSVFile creates (or truncates) path and exports into it.
func CreateCSVFile(path string) (*CSVExporter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv %s: %w", path, err)
	}
	return &CSVExporter{w: f, closer: f}, nil
}

// Export writes the header and one line per record.
func (e *CSVExporter) Export(_ Run, t *Table) error {
	w := csv.NewWriter(e.w)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range t.Records() {
		if err := w.Write(row(r)); err != nil {
			return fmt.Errorf("write csv row t=%d: %w", r.Time, err)
		}
	}
	w.Flush()
	return w.Error()
}

// Close closes the underlying file, if the exporter opened one.
func (e *CSVExporter) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// ExportAll runs every exporter in order and stops at the first failure.
func ExportAll(run Run, t *Table, exporters ...Exporter) error {
	for _, e := range exporters {
		if err := e.Export(run, t); err != nil {
			return err
		}
	}
	return nil
}
