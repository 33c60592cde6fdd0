package core

import (
	"strings"
	"testing"

	"github.com/meshfoundry/wsn-simbench/model"
)

func TestWritePositionTrace_Layout(t *testing.T) {
	fixed := []model.FixedNodeSpec{{Position: model.Point{X: 1.234, Y: 5.678}}}
	mobile := []model.MobileNodeSpec{
		mobileSpec(1, 1, false, model.MotionSegment{XExpr: "t", YExpr: "0"}),
	}

	plan, err := Synthesize(fixed, mobile)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	var sb strings.Builder
	if err := WritePositionTrace(&sb, plan); err != nil {
		t.Fatalf("WritePositionTrace: %v", err)
	}

	// One forward step for the mobile node: the timeline spans two global
	// steps, the second of which is an empty block.
	want := strings.Join([]string{
		"# Fixed positions",
		"0 0.00000000 1.23 5.68",
		"",
		"# Mobile nodes",
		"1 0.00000000 0.00 0.00",
		"",
		"",
	}, "\n") + "\n"

	if got := sb.String(); got != want {
		t.Errorf("trace mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestWritePositionTrace_MobileIDsContinueAfterFixed(t *testing.T) {
	fixed := []model.FixedNodeSpec{
		{Position: model.Point{X: 0, Y: 0}},
		{Position: model.Point{X: 10, Y: 10}},
	}
	mobile := []model.MobileNodeSpec{
		mobileSpec(1, 1, false, model.MotionSegment{XExpr: "t", YExpr: "t"}),
	}

	plan, err := Synthesize(fixed, mobile)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	var sb strings.Builder
	if err := WritePositionTrace(&sb, plan); err != nil {
		t.Fatalf("WritePositionTrace: %v", err)
	}
	if !strings.Contains(sb.String(), "\n2 0.00000000 0.00 0.00\n") {
		t.Errorf("mobile node did not take on ID 2 after two fixed nodes:\n%s", sb.String())
	}
}
