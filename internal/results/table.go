package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/meshfoundry/wsn-simbench/core"
)

// ReadMeasurementCSV parses a run's measurement table: a header row naming
// the columns, then one row per (node, timestamp) observation. Cells stay
// untyped strings; the aggregator coerces per reduction. Short rows are
// tolerated, missing cells simply stay absent from the row map.
func ReadMeasurementCSV(r io.Reader) (*core.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("measurement table is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	table := &core.Table{Columns: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(table.Rows)+2, err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// ReadMeasurementFile reads the CSV at path, wrapping parse failures in a
// DataFormatError naming the file.
func ReadMeasurementFile(path string) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := ReadMeasurementCSV(f)
	if err != nil {
		return nil, &DataFormatError{Path: path, Err: err}
	}
	return table, nil
}
