package results

import (
	"strings"
	"testing"
)

func TestReadMeasurementCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"node,root_time_now,rtt_latency,server_received",
		"1,0,12.5,100",
		"1,1,13.0,110",
		"2,0,,90", // empty latency cell stays present but unparseable
	}, "\n")

	table, err := ReadMeasurementCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ReadMeasurementCSV: %v", err)
	}

	if len(table.Columns) != 4 {
		t.Errorf("got %d columns, want 4", len(table.Columns))
	}
	if len(table.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(table.Rows))
	}
	if table.Rows[1]["server_received"] != "110" {
		t.Errorf("row 1 server_received = %q, want 110", table.Rows[1]["server_received"])
	}
	if !table.HasColumn("rtt_latency") {
		t.Error("rtt_latency column not detected")
	}
}

func TestReadMeasurementCSV_ShortRows(t *testing.T) {
	table, err := ReadMeasurementCSV(strings.NewReader("a,b,c\n1,2\n"))
	if err != nil {
		t.Fatalf("ReadMeasurementCSV: %v", err)
	}
	if _, ok := table.Rows[0]["c"]; ok {
		t.Error("short row invented a cell for column c")
	}
}

func TestReadMeasurementCSV_Empty(t *testing.T) {
	if _, err := ReadMeasurementCSV(strings.NewReader("")); err == nil {
		t.Error("empty input accepted, want error")
	}
}
