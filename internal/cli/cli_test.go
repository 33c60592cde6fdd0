package cli

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/meshfoundry/wsn-simbench/internal/results"
)

func TestObjectivesCmd_WritesArtifact(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sim.csv")
	outPath := filepath.Join(dir, "objectives.json")

	csv := "node,root_time_now,rtt_latency,total_energy_mj,server_received\n" +
		"1,10,2.0,1.5,0\n" +
		"1,20,4.0,2.5,7\n"
	if err := os.WriteFile(csvPath, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newObjectivesCmd()
	cmd.SetArgs([]string{"--csv", csvPath, "--out", outPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("objectives command failed: %v", err)
	}

	obj, err := results.ReadObjectivesFile(outPath)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if obj.Latency != 3.0 {
		t.Errorf("latency = %v, want 3.0", obj.Latency)
	}
	if obj.Energy != 4.0 {
		t.Errorf("energy = %v, want 4.0", obj.Energy)
	}
	if obj.Throughput != 7.0 {
		t.Errorf("throughput = %v, want 7.0", obj.Throughput)
	}
}

func TestObjectivesCmd_ColumnOverrides(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sim.csv")
	outPath := filepath.Join(dir, "objectives.json")

	csv := "mote,clock,delay,joules,rx_count\n" +
		"a,1,5.0,0.5,2\n" +
		"a,2,7.0,0.5,9\n"
	if err := os.WriteFile(csvPath, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newObjectivesCmd()
	cmd.SetArgs([]string{
		"--csv", csvPath, "--out", outPath,
		"--latency-col", "delay",
		"--energy-col", "joules",
		"--counter-col", "rx_count",
		"--node-col", "mote",
		"--time-col", "clock",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("objectives command failed: %v", err)
	}

	obj, err := results.ReadObjectivesFile(outPath)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if obj.Latency != 6.0 || obj.Energy != 1.0 || obj.Throughput != 7.0 {
		t.Errorf("objectives = %+v, want {6 1 7}", obj)
	}
}

func TestObjectivesCmd_MissingLatencyColumnStillWrites(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sim.csv")
	outPath := filepath.Join(dir, "objectives.json")

	csv := "node,root_time_now,total_energy_mj,server_received\n" +
		"1,10,2.0,1\n" +
		"1,20,2.0,4\n"
	if err := os.WriteFile(csvPath, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newObjectivesCmd()
	cmd.SetArgs([]string{"--csv", csvPath, "--out", outPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("objectives command failed: %v", err)
	}

	obj, err := results.ReadObjectivesFile(outPath)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if !math.IsNaN(obj.Latency) {
		t.Errorf("latency = %v, want NaN for absent column", obj.Latency)
	}
	if obj.Energy != 4.0 || obj.Throughput != 3.0 {
		t.Errorf("objectives = %+v, want energy 4 throughput 3", obj)
	}
}

func TestParetoCmd_RequiresASource(t *testing.T) {
	cmd := newParetoCmd()
	cmd.SetArgs([]string{"--out", filepath.Join(t.TempDir(), "fronts.json")})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when neither --solver-dir nor --search-file is set")
	}
}

func TestPositionsCmd_MissingConfigFlag(t *testing.T) {
	cmd := newPositionsCmd()
	cmd.SetErr(os.Stderr)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when --config is not provided")
	}
}
