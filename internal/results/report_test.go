package results

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/meshfoundry/wsn-simbench/model"
)

func TestWriteFrontReport(t *testing.T) {
	fronts := []model.Front{
		{
			&model.Candidate{ID: "MILP-case01", Origin: model.OriginSolver, Generation: model.GenerationNone,
				Objectives: model.Objectives{Latency: 4, Energy: 4, Throughput: 60}, Rank: 0},
			&model.Candidate{ID: "sim-17", Origin: model.OriginSearch, Generation: 3,
				Objectives: model.Objectives{Latency: 3, Energy: 8, Throughput: 55}, Rank: 0},
		},
		{
			&model.Candidate{ID: "sim-02", Origin: model.OriginSearch, Generation: 0,
				Objectives: model.Objectives{Latency: 5, Energy: 5, Throughput: 50}, Rank: 1},
		},
	}

	var sb strings.Builder
	if err := WriteFrontReport(&sb, fronts); err != nil {
		t.Fatalf("WriteFrontReport: %v", err)
	}

	var decoded FrontReport
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.PopulationSize != 3 {
		t.Errorf("population_size = %d, want 3", decoded.PopulationSize)
	}
	if len(decoded.Fronts) != 2 {
		t.Fatalf("got %d fronts, want 2", len(decoded.Fronts))
	}
	if decoded.Fronts[1].Rank != 1 || decoded.Fronts[1].Candidates[0].ID != "sim-02" {
		t.Errorf("front 1 = %+v, want rank 1 holding sim-02", decoded.Fronts[1])
	}
	if decoded.Fronts[0].Candidates[0].Origin != model.OriginSolver {
		t.Errorf("origin metadata lost in report")
	}
}
