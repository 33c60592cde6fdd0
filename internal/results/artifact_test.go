package results

import (
	"math"
	"strings"
	"testing"

	"github.com/meshfoundry/wsn-simbench/model"
)

func TestObjectivesRoundTrip(t *testing.T) {
	in := model.Objectives{Latency: 1.5, Energy: 200, Throughput: 42}

	var sb strings.Builder
	if err := WriteObjectives(&sb, in); err != nil {
		t.Fatalf("WriteObjectives: %v", err)
	}
	out, err := ReadObjectives(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("ReadObjectives: %v", err)
	}
	if out != in {
		t.Errorf("round trip changed objectives: got %+v, want %+v", out, in)
	}
}

func TestObjectivesRoundTrip_NaNAsNull(t *testing.T) {
	in := model.Objectives{Latency: math.NaN(), Energy: 10, Throughput: math.NaN()}

	var sb strings.Builder
	if err := WriteObjectives(&sb, in); err != nil {
		t.Fatalf("WriteObjectives: %v", err)
	}
	if !strings.Contains(sb.String(), `"latency": null`) {
		t.Errorf("NaN latency not encoded as null:\n%s", sb.String())
	}

	out, err := ReadObjectives(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("ReadObjectives: %v", err)
	}
	if !math.IsNaN(out.Latency) || !math.IsNaN(out.Throughput) {
		t.Errorf("null objectives did not come back as NaN: %+v", out)
	}
	if out.Energy != 10 {
		t.Errorf("Energy = %v, want 10", out.Energy)
	}
}

func TestReadObjectives_MissingKeysAreNaN(t *testing.T) {
	out, err := ReadObjectives(strings.NewReader(`{"energy": 5}`))
	if err != nil {
		t.Fatalf("ReadObjectives: %v", err)
	}
	if !math.IsNaN(out.Latency) || !math.IsNaN(out.Throughput) || out.Energy != 5 {
		t.Errorf("partial artifact = %+v, want NaN latency/throughput and energy 5", out)
	}
}
