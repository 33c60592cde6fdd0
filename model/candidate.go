package model

import "math"

// Origin tags which result source produced a candidate.
// Ranking never inspects it; it is carried through for reporting.
type Origin string

const (
	// OriginSolver marks results from the exact (MILP) solver, one per case.
	OriginSolver Origin = "MILP"
	// OriginSearch marks results from the heuristic search, many per generation.
	OriginSearch Origin = "SimLab"
)

// GenerationNone is the generation index for candidates that do not belong to
// a generational search (solver results).
const GenerationNone = -1

// RankUnassigned is the rank of a candidate that has not been through
// non-dominated sorting yet. The ranker assigns a rank exactly once.
const RankUnassigned = -1

// Objectives is the fixed objective vector of one evaluated simulation run.
// Latency and Energy are minimized, Throughput is maximized. Any field may be
// NaN when the source data was missing; such candidates must be filtered
// before ranking, because NaN never participates in dominance.
type Objectives struct {
	Latency    float64 `json:"latency"`
	Energy     float64 `json:"energy"`
	Throughput float64 `json:"throughput"`
}

// IsFinite reports whether every objective carries a usable numeric value.
func (o Objectives) IsFinite() bool {
	for _, v := range []float64{o.Latency, o.Energy, o.Throughput} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Candidate is one evaluated simulation outcome subject to Pareto ranking.
type Candidate struct {
	ID         string
	Origin     Origin
	Generation int
	Objectives Objectives

	// Rank is the non-domination front index, RankUnassigned until the
	// ranker sets it.
	Rank int
}

// Front is the set of candidates sharing one non-domination rank.
// Front 0 is the Pareto-optimal set.
type Front []*Candidate
