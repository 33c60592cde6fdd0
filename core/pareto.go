// core/pareto.go
package core

import "github.com/meshfoundry/wsn-simbench/model"

// Dominates reports whether candidate a dominates candidate b: no worse on
// every objective under its direction (latency and energy minimized,
// throughput maximized) and strictly better on at least one. The relation is
// irreflexive; a candidate never dominates itself.
//
// NaN objectives make every comparison false, so a candidate carrying NaN
// neither dominates nor is dominated. Callers are expected to filter such
// candidates out before ranking.
func Dominates(a, b model.Objectives) bool {
	betterOrEqual := a.Latency <= b.Latency &&
		a.Energy <= b.Energy &&
		a.Throughput >= b.Throughput

	strictlyBetter := a.Latency < b.Latency ||
		a.Energy < b.Energy ||
		a.Throughput > b.Throughput

	return betterOrEqual && strictlyBetter
}

// FastNonDominatedSort partitions the population into non-domination fronts
// and assigns every candidate its front index as Rank. Front 0 is the
// Pareto-optimal set. Origin and generation are never consulted: a merged
// population from heterogeneous sources ranks exactly like a homogeneous one.
//
// The pairwise pass is O(n²) in population size, which is fine for the
// offline batch sizes this tool handles.
func FastNonDominatedSort(population []*model.Candidate) []model.Front {
	n := len(population)
	if n == 0 {
		return nil
	}

	// dominated[i] holds the indices i dominates; domCount[i] counts the
	// candidates dominating i.
	dominated := make([][]int, n)
	domCount := make([]int, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if Dominates(population[i].Objectives, population[j].Objectives) {
				dominated[i] = append(dominated[i], j)
			} else if Dominates(population[j].Objectives, population[i].Objectives) {
				domCount[i]++
			}
		}
	}

	var fronts []model.Front
	var current []int
	for i := 0; i < n; i++ {
		if domCount[i] == 0 {
			population[i].Rank = 0
			current = append(current, i)
		}
	}

	frontIndex := 0
	for len(current) > 0 {
		front := make(model.Front, 0, len(current))
		for _, idx := range current {
			front = append(front, population[idx])
		}
		fronts = append(fronts, front)

		var next []int
		for _, idx := range current {
			for _, q := range dominated[idx] {
				domCount[q]--
				if domCount[q] == 0 {
					population[q].Rank = frontIndex + 1
					next = append(next, q)
				}
			}
		}
		frontIndex++
		current = next
	}

	return fronts
}
