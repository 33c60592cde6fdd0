package model

// Point is a 2D position on the simulation plane.
type Point struct {
	X float64
	Y float64
}

// MotionSegment is one leg of a mobile node's path: a pair of scalar
// expressions x(t), y(t) defined over the normalized parameter t in [0,1].
// Segments are parsed once from configuration and never mutated.
type MotionSegment struct {
	XExpr string
	YExpr string
}

// FixedNodeSpec describes a node that never moves.
type FixedNodeSpec struct {
	Position Point
}

// MobileNodeSpec describes a moving node: an ordered path of motion segments
// traversed at a constant speed, sampled every TimeStep seconds.
// Speed and TimeStep must be strictly positive; the scenario loader enforces
// this before a spec reaches the synthesizer.
type MobileNodeSpec struct {
	Path      []MotionSegment
	Speed     float64
	TimeStep  float64
	RoundTrip bool
}

// PositionSample is one time-stamped position of a node. Samples are produced
// by trajectory synthesis and written once to the output trace.
type PositionSample struct {
	NodeID  int
	Elapsed float64
	Pos     Point
}

// NodeTrajectory is the discretized path of one mobile node.
//
// ForwardSteps is the sample count before any round-trip doubling; when
// RoundTrip is set, len(Points) == 2*ForwardSteps and the second half is the
// first half reversed.
type NodeTrajectory struct {
	NodeID       int
	TimeStep     float64
	Points       []Point
	ForwardSteps int
	Start        Point
}
