// core/objectives.go
package core

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/meshfoundry/wsn-simbench/model"
)

// Table is a raw measurement table from one simulation run: rows keyed by
// node identifier and timestamp, cells kept as strings so that numeric
// coercion happens per reduction (a cell unusable for one objective may
// still be fine for another).
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnMapping names the measurement columns each objective reduces over.
type ColumnMapping struct {
	Latency string // averaged
	Energy  string // summed
	Counter string // per-node last-minus-first, clamped at zero
	Node    string // grouping key for the counter reduction
	Time    string // ordering key for the counter reduction
}

// DefaultColumns returns the column names the simulator's log scraper emits.
func DefaultColumns() ColumnMapping {
	return ColumnMapping{
		Latency: "rtt_latency",
		Energy:  "total_energy_mj",
		Counter: "server_received",
		Node:    "node",
		Time:    "root_time_now",
	}
}

// ComputeObjectives reduces a run's measurement table into the scalar
// objective vector consumed by Pareto ranking.
//
// Latency is the mean of the parseable latency cells, NaN when the column is
// absent or nothing parses. Energy is a sum-with-skip: unparseable cells
// contribute zero, and an absent column aggregates to zero outright.
// Throughput is the per-node counter delta (last minus first in timestamp
// order, clamped at zero) summed across nodes, NaN when the counter column
// is absent.
func ComputeObjectives(t *Table, cols ColumnMapping) model.Objectives {
	return model.Objectives{
		Latency:    meanColumn(t, cols.Latency),
		Energy:     sumColumn(t, cols.Energy),
		Throughput: sumLastMinusFirst(t, cols.Counter, cols.Node, cols.Time),
	}
}

func meanColumn(t *Table, col string) float64 {
	if !t.HasColumn(col) {
		return math.NaN()
	}
	var vals []float64
	for _, row := range t.Rows {
		if v, ok := parseCell(row[col]); ok {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

func sumColumn(t *Table, col string) float64 {
	if !t.HasColumn(col) {
		return 0
	}
	var vals []float64
	for _, row := range t.Rows {
		if v, ok := parseCell(row[col]); ok {
			vals = append(vals, v)
		}
	}
	return floats.Sum(vals)
}

// sumLastMinusFirst treats the counter as monotonically non-decreasing per
// node in the healthy case; a decreasing reading is noise or a counter reset
// and contributes zero, never a negative delta.
func sumLastMinusFirst(t *Table, counterCol, nodeCol, timeCol string) float64 {
	if !t.HasColumn(counterCol) {
		return math.NaN()
	}

	// Rows must be in (node, timestamp) order before first/last are taken.
	rows := make([]map[string]string, len(t.Rows))
	copy(rows, t.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		if c := compareCells(rows[i][nodeCol], rows[j][nodeCol]); c != 0 {
			return c < 0
		}
		return compareCells(rows[i][timeCol], rows[j][timeCol]) < 0
	})

	first := make(map[string]string)
	last := make(map[string]string)
	var order []string
	for _, row := range rows {
		node := row[nodeCol]
		if _, seen := first[node]; !seen {
			first[node] = row[counterCol]
			order = append(order, node)
		}
		last[node] = row[counterCol]
	}

	var total float64
	for _, node := range order {
		start, okStart := parseCell(first[node])
		end, okEnd := parseCell(last[node])
		if !okStart || !okEnd {
			continue
		}
		delta := end - start
		if delta < 0 {
			delta = 0
		}
		total += delta
	}
	return total
}

// parseCell coerces a cell to a finite float, reporting failure instead of
// substituting a default.
func parseCell(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// compareCells orders two cells numerically when both parse, lexically
// otherwise, so numeric node IDs and timestamps sort the way the source
// system emitted them.
func compareCells(a, b string) int {
	av, aok := parseCell(a)
	bv, bok := parseCell(b)
	if aok && bok {
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
