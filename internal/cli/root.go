// Package cli implements the simbench command-line interface: trajectory
// synthesis for simulation configurations, objective aggregation for finished
// runs, and Pareto ranking across result populations.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/meshfoundry/wsn-simbench/internal/logging"
	"github.com/meshfoundry/wsn-simbench/internal/observability"
)

// Execute runs the simbench CLI and returns an error if any command fails.
//
// The root command wires a structured logger into the command context
// (debug level with --verbose) and initialises tracing from the
// SIMBENCH_TRACING_* environment variables; spans are flushed when the
// command tree finishes.
func Execute() error {
	var (
		verbose         bool
		tracingShutdown func(context.Context) error
	)

	root := &cobra.Command{
		Use:   "simbench",
		Short: "simbench prepares and analyses wireless-sensor-network simulation batches",
		Long: `simbench turns declarative motion configurations into discretized position
traces for the simulator, reduces raw run measurements into scalar
objectives, and partitions result populations into Pareto fronts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "info"
			if verbose {
				level = "debug"
			}
			log := logging.New(logging.Config{Level: level})
			ctx := logging.ContextWithLogger(cmd.Context(), log)

			shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
			if err != nil {
				return err
			}
			tracingShutdown = shutdown

			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			observability.ShutdownWithTimeout(ctx, tracingShutdown, logging.LoggerFromContext(ctx))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPositionsCmd())
	root.AddCommand(newObjectivesCmd())
	root.AddCommand(newParetoCmd())

	return root.ExecuteContext(context.Background())
}
