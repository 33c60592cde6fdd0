package results

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/meshfoundry/wsn-simbench/model"
)

func writeCase(t *testing.T, dir, name, artifact string) {
	t.Helper()
	caseDir := filepath.Join(dir, name)
	if err := os.MkdirAll(caseDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if artifact == "" {
		return
	}
	if err := os.WriteFile(filepath.Join(caseDir, ObjectivesFileName), []byte(artifact), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadSolverPopulation(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "case01", `{"latency": 4, "energy": 4, "throughput": 60}`)
	writeCase(t, dir, "case02", "") // no artifact yet: in-progress case
	writeCase(t, dir, "case03", `{"latency": broken`)
	writeCase(t, dir, "case04", `{"latency": 3, "energy": 8, "throughput": 55}`)

	population, stats, err := LoadSolverPopulation(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("LoadSolverPopulation: %v", err)
	}

	want := LoadStats{Loaded: 2, MissingArtifacts: 1, Malformed: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	var ids []string
	for _, c := range population {
		ids = append(ids, c.ID)
		if c.Origin != model.OriginSolver || c.Generation != model.GenerationNone {
			t.Errorf("candidate %s carries origin %q generation %d, want solver metadata", c.ID, c.Origin, c.Generation)
		}
		if c.Rank != model.RankUnassigned {
			t.Errorf("candidate %s pre-ranked to %d", c.ID, c.Rank)
		}
	}
	if diff := cmp.Diff([]string{"MILP-case01", "MILP-case04"}, ids); diff != "" {
		t.Errorf("population IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSolverPopulation_MissingDirectory(t *testing.T) {
	_, _, err := LoadSolverPopulation(context.Background(), filepath.Join(t.TempDir(), "nope"), nil)
	if err == nil {
		t.Fatal("LoadSolverPopulation succeeded on a missing directory")
	}
}

func TestLoadSearchPopulation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generations.json")
	payload := `{
	  "1": [
	    {"simulation_id": "sim-10", "objectives": {"latency": 5, "energy": 5, "throughput": 50}}
	  ],
	  "0": [
	    {"simulation_id": "sim-01", "objectives": {"latency": 9, "energy": 2, "throughput": 30}},
	    {"simulation_id": "sim-02", "objectives": {"latency": null, "energy": 2, "throughput": 30}}
	  ]
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	population, stats, err := LoadSearchPopulation(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("LoadSearchPopulation: %v", err)
	}
	if stats.Loaded != 3 {
		t.Errorf("Loaded = %d, want 3", stats.Loaded)
	}

	// Generations load in numeric order, entries in file order.
	var ids []string
	for _, c := range population {
		ids = append(ids, c.ID)
	}
	if diff := cmp.Diff([]string{"sim-01", "sim-02", "sim-10"}, ids); diff != "" {
		t.Errorf("population order mismatch (-want +got):\n%s", diff)
	}

	if population[0].Generation != 0 || population[2].Generation != 1 {
		t.Errorf("generation indices not carried: %d and %d", population[0].Generation, population[2].Generation)
	}
	if !math.IsNaN(population[1].Objectives.Latency) {
		t.Errorf("null latency should load as NaN, got %v", population[1].Objectives.Latency)
	}
}

func TestLoadSearchPopulation_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generations.json")
	if err := os.WriteFile(path, []byte(`[not an object`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, _, err := LoadSearchPopulation(context.Background(), path, nil)
	var dfe *DataFormatError
	if !errors.As(err, &dfe) {
		t.Fatalf("error %v is not a DataFormatError", err)
	}
	if dfe.Path != path {
		t.Errorf("DataFormatError path = %q, want %q", dfe.Path, path)
	}
}

func TestFilterFinite(t *testing.T) {
	finite := &model.Candidate{ID: "ok", Objectives: model.Objectives{Latency: 1, Energy: 1, Throughput: 1}}
	withNaN := &model.Candidate{ID: "nan", Objectives: model.Objectives{Latency: math.NaN(), Energy: 1, Throughput: 1}}
	withInf := &model.Candidate{ID: "inf", Objectives: model.Objectives{Latency: 1, Energy: math.Inf(1), Throughput: 1}}

	kept, dropped := FilterFinite([]*model.Candidate{finite, withNaN, withInf})
	if len(kept) != 1 || kept[0].ID != "ok" {
		t.Errorf("kept = %v, want only the finite candidate", kept)
	}
	if len(dropped) != 2 {
		t.Errorf("dropped %d candidates, want 2", len(dropped))
	}
}
