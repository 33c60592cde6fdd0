package cli

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshfoundry/wsn-simbench/core"
	"github.com/meshfoundry/wsn-simbench/internal/logging"
	"github.com/meshfoundry/wsn-simbench/internal/results"
)

func newObjectivesCmd() *cobra.Command {
	var (
		csvPath string
		outPath string
		cols    = core.DefaultColumns()
	)

	cmd := &cobra.Command{
		Use:   "objectives",
		Short: "Reduce a run's measurement table to an objective vector",
		Long: `objectives reads the CSV measurement table produced by a simulation run
and reduces it to the three scalar objectives used for ranking: mean latency,
total energy and aggregate throughput. Missing latency data yields a null
latency in the artifact rather than an error, so partially failed runs can
still be recorded and filtered out later.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := strings.TrimSuffix(filepath.Base(csvPath), filepath.Ext(csvPath))
			ctx, log := logging.WithRunLogger(cmd.Context(), logging.LoggerFromContext(cmd.Context()), runID)

			table, err := results.ReadMeasurementFile(csvPath)
			if err != nil {
				return fmt.Errorf("read measurements: %w", err)
			}

			obj := core.ComputeObjectives(table, cols)
			if math.IsNaN(obj.Latency) {
				log.Warn(ctx, "no parseable latency samples", logging.String("column", cols.Latency))
			}
			if math.IsNaN(obj.Throughput) {
				log.Warn(ctx, "counter column absent, throughput unavailable", logging.String("column", cols.Counter))
			}

			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create artifact: %w", err)
			}
			defer out.Close()

			if err := results.WriteObjectives(out, obj); err != nil {
				return fmt.Errorf("write artifact %s: %w", outPath, err)
			}
			log.Info(ctx, "objectives written",
				logging.String("path", outPath),
				logging.Float64("latency", obj.Latency),
				logging.Float64("energy", obj.Energy),
				logging.Float64("throughput", obj.Throughput))
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "measurement table CSV (required)")
	cmd.Flags().StringVar(&outPath, "out", results.ObjectivesFileName, "output artifact file")
	cmd.Flags().StringVar(&cols.Latency, "latency-col", cols.Latency, "column averaged into the latency objective")
	cmd.Flags().StringVar(&cols.Energy, "energy-col", cols.Energy, "column summed into the energy objective")
	cmd.Flags().StringVar(&cols.Counter, "counter-col", cols.Counter, "cumulative counter column for throughput")
	cmd.Flags().StringVar(&cols.Node, "node-col", cols.Node, "node identity column for the counter reduction")
	cmd.Flags().StringVar(&cols.Time, "time-col", cols.Time, "timestamp column ordering counter samples")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}
