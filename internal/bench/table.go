package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Table holds one measurement per (entry count, contender) pair. Rows are
// appended in order, so a cancelled run yields a prefix of the full table.
type Table struct {
	Mode    string
	Columns []string    // contender names
	Entries []int       // entry count of each planned row
	Values  [][]float64 // Values[row][column] for recorded rows
}

// NewTable returns an empty table for the given columns and row entry counts.
func NewTable(mode string, columns []string, entries []int) *Table {
	return &Table{Mode: mode, Columns: columns, Entries: entries}
}

// AddRow records the next row. It reports false if the row does not match
// the column count or every planned row is already recorded.
func (t *Table) AddRow(values []float64) bool {
	if len(values) != len(t.Columns) || len(t.Values) >= len(t.Entries) {
		return false
	}
	t.Values = append(t.Values, values)
	return true
}

// Rows returns the number of rows recorded so far.
func (t *Table) Rows() int { return len(t.Values) }

type splitTable struct {
	Columns []string   `json:"columns"`
	Index   []string   `json:"index"`
	Data    [][]string `json:"data"`
}

// MarshalJSON encodes the recorded rows in pandas' "split" orientation.
// Every value is a string; the first column holds the row's entry count.
func (t *Table) MarshalJSON() ([]byte, error) {
	out := splitTable{
		Columns: append([]string{"columns"}, t.Columns...),
		Index:   make([]string, t.Rows()),
		Data:    make([][]string, t.Rows()),
	}
	for r := range t.Rows() {
		out.Index[r] = strconv.Itoa(r)
		row := make([]string, 0, len(t.Columns)+1)
		row = append(row, strconv.Itoa(t.Entries[r]))
		for _, v := range t.Values[r] {
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		out.Data[r] = row
	}
	return json.Marshal(out)
}

// WriteJSON writes the table to w followed by a newline.
func (t *Table) WriteJSON(w io.Writer) error {
	b, err := t.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

// WriteTextfile writes the recorded rows to path in the Prometheus text
// exposition format, one gauge sample per cell.
func (t *Table) WriteTextfile(path string) error {
	reg := prometheus.NewRegistry()
	result := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "typelessbench",
		Name:      "result",
		Help:      "Measured value per contender and entry count (milliseconds in time mode, bytes in memory mode).",
	}, []string{"mode", "contender", "entries"})
	if err := reg.Register(result); err != nil {
		return err
	}
	for r := range t.Rows() {
		entries := strconv.Itoa(t.Entries[r])
		for c, name := range t.Columns {
			result.WithLabelValues(t.Mode, name, entries).Set(t.Values[r][c])
		}
	}
	return prometheus.WriteToTextfile(path, reg)
}
