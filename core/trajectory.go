// core/trajectory.go
package core

import (
	"fmt"
	"math"

	"github.com/meshfoundry/wsn-simbench/model"
)

// segmentSamples is the fixed raw sampling resolution per motion segment:
// each x(t)/y(t) pair is evaluated at this many uniformly spaced t values
// in [0,1] before arc-length estimation and resampling.
const segmentSamples = 100

// EvaluationError reports a motion expression that failed to compile,
// identifying the node and segment it came from. Synthesis for the offending
// node is aborted; whether the whole batch stops is the caller's choice.
type EvaluationError struct {
	NodeID  int
	Segment int
	Expr    string
	Err     error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("node %d segment %d: expression %q: %v", e.NodeID, e.Segment, e.Expr, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// Plan is the synthesized output for one scenario: fixed positions plus one
// discretized trajectory per mobile node. Node IDs are assigned in scenario
// order, fixed nodes first, then mobile nodes.
type Plan struct {
	Fixed  []model.Point
	Mobile []model.NodeTrajectory
}

// StartPositions returns the initial position of each mobile node, in node order.
func (p *Plan) StartPositions() []model.Point {
	starts := make([]model.Point, len(p.Mobile))
	for i, traj := range p.Mobile {
		starts[i] = traj.Start
	}
	return starts
}

// MaxForwardSteps is the largest pre-doubling sample count across all mobile
// nodes; the merged timeline spans twice this many global steps.
func (p *Plan) MaxForwardSteps() int {
	maxSteps := 0
	for _, traj := range p.Mobile {
		if traj.ForwardSteps > maxSteps {
			maxSteps = traj.ForwardSteps
		}
	}
	return maxSteps
}

// MergedSamples builds the global, time-indexed trace across all mobile
// nodes, grouped into blocks by global step. A node whose trajectory is
// shorter than the current step contributes nothing to that block; downstream
// consumers hold it at its last emitted position.
func (p *Plan) MergedSamples() [][]model.PositionSample {
	totalSteps := 2 * p.MaxForwardSteps()
	blocks := make([][]model.PositionSample, 0, totalSteps)
	for step := 0; step < totalSteps; step++ {
		var block []model.PositionSample
		for _, traj := range p.Mobile {
			if step < len(traj.Points) {
				block = append(block, model.PositionSample{
					NodeID:  traj.NodeID,
					Elapsed: float64(step) * traj.TimeStep,
					Pos:     traj.Points[step],
				})
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// Synthesize discretizes every mobile node's path and collects fixed
// positions into a Plan. It is a pure function of its inputs: an empty mobile
// list yields a plan with no trajectories, and the first expression failure
// aborts with an EvaluationError for that node.
func Synthesize(fixed []model.FixedNodeSpec, mobile []model.MobileNodeSpec) (*Plan, error) {
	plan := &Plan{Fixed: make([]model.Point, len(fixed))}
	for i, spec := range fixed {
		plan.Fixed[i] = spec.Position
	}

	for i, spec := range mobile {
		nodeID := len(fixed) + i
		traj, err := synthesizeNode(nodeID, spec)
		if err != nil {
			return nil, err
		}
		plan.Mobile = append(plan.Mobile, traj)
	}
	return plan, nil
}

// synthesizeNode samples, budgets, and resamples one mobile node's path.
func synthesizeNode(nodeID int, spec model.MobileNodeSpec) (model.NodeTrajectory, error) {
	if len(spec.Path) == 0 {
		return model.NodeTrajectory{}, fmt.Errorf("node %d: empty function path", nodeID)
	}

	var (
		segXs, segYs [][]float64
		segDists     []float64
		totalDist    float64
	)

	for segIdx, seg := range spec.Path {
		xs, err := sampleExpression(seg.XExpr, nodeID, segIdx)
		if err != nil {
			return model.NodeTrajectory{}, err
		}
		ys, err := sampleExpression(seg.YExpr, nodeID, segIdx)
		if err != nil {
			return model.NodeTrajectory{}, err
		}
		dist := arcLength(xs, ys)
		segXs = append(segXs, xs)
		segYs = append(segYs, ys)
		segDists = append(segDists, dist)
		totalDist += dist
	}

	// Step budget: at least one sample even for a zero-length or
	// sub-timestep path.
	duration := totalDist / spec.Speed
	totalSteps := int(math.Floor(duration / spec.TimeStep))
	if totalSteps < 1 {
		totalSteps = 1
	}

	var forward []model.Point
	for i := range segXs {
		// A degenerate path (zero total arc length) keeps the budget on
		// its segments instead of dividing by zero.
		proportion := 1.0
		if totalDist > 0 {
			proportion = segDists[i] / totalDist
		}
		segSteps := int(math.Round(proportion * float64(totalSteps)))
		if segSteps < 1 {
			segSteps = 1
		}
		xs := resampleLinear(segXs[i], segSteps)
		ys := resampleLinear(segYs[i], segSteps)
		for j := range xs {
			forward = append(forward, model.Point{X: xs[j], Y: ys[j]})
		}
	}

	points := forward
	if spec.RoundTrip {
		points = make([]model.Point, 0, 2*len(forward))
		points = append(points, forward...)
		for j := len(forward) - 1; j >= 0; j-- {
			points = append(points, forward[j])
		}
	}

	return model.NodeTrajectory{
		NodeID:       nodeID,
		TimeStep:     spec.TimeStep,
		Points:       points,
		ForwardSteps: len(forward),
		Start:        forward[0],
	}, nil
}

// sampleExpression evaluates expr at segmentSamples uniform t values in [0,1].
func sampleExpression(src string, nodeID, segIdx int) ([]float64, error) {
	expr, err := ParseExpr(src)
	if err != nil {
		return nil, &EvaluationError{NodeID: nodeID, Segment: segIdx, Expr: src, Err: err}
	}
	vals := make([]float64, segmentSamples)
	for i := range vals {
		t := float64(i) / float64(segmentSamples-1)
		vals[i] = expr.Eval(t)
	}
	return vals, nil
}

// arcLength approximates a segment's length as the sum of Euclidean
// distances between consecutive samples.
func arcLength(xs, ys []float64) float64 {
	var total float64
	for i := 1; i < len(xs); i++ {
		dx := xs[i] - xs[i-1]
		dy := ys[i] - ys[i-1]
		total += math.Sqrt(dx*dx + dy*dy)
	}
	return total
}

// resampleLinear resamples vals to exactly n points via linear interpolation
// over the segment's own parametric domain. n == 1 yields the first sample.
func resampleLinear(vals []float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = vals[0]
		return out
	}
	last := len(vals) - 1
	for i := 0; i < n; i++ {
		u := float64(i) / float64(n-1) * float64(last)
		lo := int(math.Floor(u))
		if lo >= last {
			out[i] = vals[last]
			continue
		}
		frac := u - float64(lo)
		out[i] = vals[lo] + (vals[lo+1]-vals[lo])*frac
	}
	return out
}
