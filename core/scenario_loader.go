// core/scenario_loader.go
package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/meshfoundry/wsn-simbench/model"
)

// SimulationScenario is one simulation configuration: the node layout plus
// the radio and duration parameters the surrounding tooling forwards to the
// simulator. Specs are immutable once loaded.
type SimulationScenario struct {
	Fixed  []model.FixedNodeSpec
	Mobile []model.MobileNodeSpec

	// Passed through to the simulator template; not used by synthesis.
	DurationMinutes   float64
	TxRange           float64
	InterferenceRange float64
}

type scenarioJSON struct {
	SimulationElements simulationElementsJSON `json:"simulationElements"`
	Duration           float64                `json:"duration"`
	RadiusOfReach      float64                `json:"radiusOfReach"`
	RadiusOfInter      float64                `json:"radiusOfInter"`
}

type simulationElementsJSON struct {
	FixedMotes  []fixedMoteJSON  `json:"fixedMotes"`
	MobileMotes []mobileMoteJSON `json:"mobileMotes"`
}

type fixedMoteJSON struct {
	Position []float64 `json:"position"`
}

type mobileMoteJSON struct {
	FunctionPath [][]string `json:"functionPath"`
	Speed        float64    `json:"speed"`
	TimeStep     float64    `json:"timeStep"`
	IsRoundTrip  bool       `json:"isRoundTrip"`
}

// LoadScenario reads a simulation configuration from r and validates the
// parts synthesis depends on: every fixed mote carries an [x, y] position,
// every mobile mote has a non-empty path of [x_expr, y_expr] pairs, and
// speed/timeStep are strictly positive. Expression syntax is deliberately
// not checked here; the synthesizer reports EvaluationError with segment
// context when it compiles the path.
func LoadScenario(r io.Reader) (*SimulationScenario, error) {
	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}

	scenario := &SimulationScenario{
		DurationMinutes:   payload.Duration,
		TxRange:           payload.RadiusOfReach,
		InterferenceRange: payload.RadiusOfInter,
	}

	for i, mote := range payload.SimulationElements.FixedMotes {
		if len(mote.Position) != 2 {
			return nil, fmt.Errorf("LoadScenario: fixed mote %d: position must be [x, y], got %d value(s)", i, len(mote.Position))
		}
		scenario.Fixed = append(scenario.Fixed, model.FixedNodeSpec{
			Position: model.Point{X: mote.Position[0], Y: mote.Position[1]},
		})
	}

	for i, mote := range payload.SimulationElements.MobileMotes {
		if len(mote.FunctionPath) == 0 {
			return nil, fmt.Errorf("LoadScenario: mobile mote %d: empty functionPath", i)
		}
		if mote.Speed <= 0 {
			return nil, fmt.Errorf("LoadScenario: mobile mote %d: speed must be > 0, got %v", i, mote.Speed)
		}
		if mote.TimeStep <= 0 {
			return nil, fmt.Errorf("LoadScenario: mobile mote %d: timeStep must be > 0, got %v", i, mote.TimeStep)
		}

		spec := model.MobileNodeSpec{
			Speed:     mote.Speed,
			TimeStep:  mote.TimeStep,
			RoundTrip: mote.IsRoundTrip,
		}
		for j, pair := range mote.FunctionPath {
			if len(pair) != 2 {
				return nil, fmt.Errorf("LoadScenario: mobile mote %d: segment %d must be [x_expr, y_expr], got %d value(s)", i, j, len(pair))
			}
			spec.Path = append(spec.Path, model.MotionSegment{XExpr: pair[0], YExpr: pair[1]})
		}
		scenario.Mobile = append(scenario.Mobile, spec)
	}

	return scenario, nil
}
