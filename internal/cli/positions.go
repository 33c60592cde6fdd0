package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meshfoundry/wsn-simbench/core"
	"github.com/meshfoundry/wsn-simbench/internal/logging"
	"github.com/meshfoundry/wsn-simbench/internal/observability"
)

func newPositionsCmd() *cobra.Command {
	var (
		configPath string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Synthesize node trajectories from a simulation configuration",
		Long: `positions reads a simulation configuration, evaluates the motion
expressions of every mobile node, and writes the discretized position trace
the simulator replays. Configurations without mobile nodes produce no trace
file; their start positions are still reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := strings.TrimSuffix(filepath.Base(configPath), filepath.Ext(configPath))
			ctx, log := logging.WithRunLogger(cmd.Context(), logging.LoggerFromContext(cmd.Context()), runID)

			_, span := observability.Tracer().Start(ctx, "positions",
				trace.WithAttributes(attribute.String("config", configPath)))
			defer span.End()

			collector, err := observability.NewBatchCollector(prometheus.DefaultRegisterer)
			if err != nil {
				return err
			}

			f, err := os.Open(configPath)
			if err != nil {
				return fmt.Errorf("open configuration: %w", err)
			}
			defer f.Close()

			scenario, err := core.LoadScenario(f)
			if err != nil {
				return fmt.Errorf("load configuration %s: %w", configPath, err)
			}

			start := time.Now()
			plan, err := core.Synthesize(scenario.Fixed, scenario.Mobile)
			collector.RecordSynthesis(err, time.Since(start))
			if err != nil {
				return err
			}

			starts := plan.StartPositions()
			log.Info(ctx, "trajectories synthesized",
				logging.Int("fixed_nodes", len(plan.Fixed)),
				logging.Int("mobile_nodes", len(plan.Mobile)),
				logging.Int("max_forward_steps", plan.MaxForwardSteps()))
			for i, p := range starts {
				log.Debug(ctx, "mobile start position",
					logging.Int("node", len(plan.Fixed)+i),
					logging.Float64("x", p.X),
					logging.Float64("y", p.Y))
			}

			if len(plan.Mobile) == 0 {
				log.Info(ctx, "no mobile nodes in configuration, skipping position trace")
				return nil
			}

			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create trace file: %w", err)
			}
			defer out.Close()

			if err := core.WritePositionTrace(out, plan); err != nil {
				return fmt.Errorf("write trace file %s: %w", outPath, err)
			}
			log.Info(ctx, "position trace written", logging.String("path", outPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "simulation configuration JSON (required)")
	cmd.Flags().StringVar(&outPath, "out", "positions.dat", "output position trace file")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
