// core/trace.go
package core

import (
	"bufio"
	"fmt"
	"io"
)

// WritePositionTrace renders a plan as the position trace consumed by the
// simulator's mobility plugin.
//
// Layout: a comment section listing fixed positions at time zero, a blank
// line, a mobile-node comment, then one block per global step with a line
// per mobile node still in motion, blocks separated by blank lines.
// Coordinates are fixed to 2 decimals and elapsed time to 8.
//
// When the plan has no mobile nodes the caller should skip the trace file
// entirely; this function still writes the fixed section for completeness.
func WritePositionTrace(w io.Writer, plan *Plan) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Fixed positions")
	for id, pos := range plan.Fixed {
		fmt.Fprintf(bw, "%d 0.00000000 %.2f %.2f\n", id, pos.X, pos.Y)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "# Mobile nodes")
	for _, block := range plan.MergedSamples() {
		for _, s := range block {
			fmt.Fprintf(bw, "%d %.8f %.2f %.2f\n", s.NodeID, s.Elapsed, s.Pos.X, s.Pos.Y)
		}
		fmt.Fprintln(bw)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("WritePositionTrace: %w", err)
	}
	return nil
}
