package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/meshfoundry/wsn-simbench/core"
	"github.com/meshfoundry/wsn-simbench/internal/logging"
	"github.com/meshfoundry/wsn-simbench/internal/observability"
	"github.com/meshfoundry/wsn-simbench/internal/results"
	"github.com/meshfoundry/wsn-simbench/model"
)

func newParetoCmd() *cobra.Command {
	var (
		solverDir   string
		searchFile  string
		outPath     string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "pareto",
		Short: "Partition result populations into Pareto fronts",
		Long: `pareto loads objective vectors from solver run directories and search
generation files, merges the populations, and partitions the finite
candidates into non-dominated fronts. Candidates with missing or non-finite
objectives are reported and excluded from ranking.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.LoggerFromContext(ctx)

			if solverDir == "" && searchFile == "" {
				return fmt.Errorf("at least one of --solver-dir and --search-file is required")
			}

			collector, err := observability.NewBatchCollector(prometheus.DefaultRegisterer)
			if err != nil {
				return err
			}
			if metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", collector.Handler())
				srv := &http.Server{Addr: metricsAddr, Handler: mux}
				go func() {
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						log.Warn(ctx, "metrics listener stopped", logging.Any("error", err))
					}
				}()
				defer srv.Close()
				log.Info(ctx, "serving metrics", logging.String("addr", metricsAddr))
			}

			_, span := observability.Tracer().Start(ctx, "pareto")
			defer span.End()

			var population []*model.Candidate
			if solverDir != "" {
				solver, stats, err := results.LoadSolverPopulation(ctx, solverDir, log)
				if err != nil {
					return fmt.Errorf("load solver population: %w", err)
				}
				collector.AddLoaded(string(model.OriginSolver), stats.Loaded)
				collector.AddSkipped(string(model.OriginSolver), observability.SkipMissingArtifact, stats.MissingArtifacts)
				collector.AddSkipped(string(model.OriginSolver), observability.SkipMalformed, stats.Malformed)
				if skipped := stats.MissingArtifacts + stats.Malformed; skipped > 0 {
					log.Warn(ctx, "solver population is short",
						logging.Int("loaded", stats.Loaded),
						logging.Int("missing_artifacts", stats.MissingArtifacts),
						logging.Int("malformed", stats.Malformed))
				}
				population = append(population, solver...)
			}
			if searchFile != "" {
				search, stats, err := results.LoadSearchPopulation(ctx, searchFile, log)
				if err != nil {
					return fmt.Errorf("load search population: %w", err)
				}
				collector.AddLoaded(string(model.OriginSearch), stats.Loaded)
				collector.AddSkipped(string(model.OriginSearch), observability.SkipMalformed, stats.Malformed)
				if stats.Malformed > 0 {
					log.Warn(ctx, "search population is short",
						logging.Int("loaded", stats.Loaded),
						logging.Int("malformed", stats.Malformed))
				}
				population = append(population, search...)
			}

			kept, dropped := results.FilterFinite(population)
			for _, c := range dropped {
				collector.AddSkipped(string(c.Origin), observability.SkipNonFinite, 1)
				log.Warn(ctx, "candidate has non-finite objectives, excluded from ranking",
					logging.String("candidate", c.ID))
			}
			if len(kept) == 0 {
				return fmt.Errorf("no rankable candidates in population of %d", len(population))
			}

			fronts := core.FastNonDominatedSort(kept)
			collector.RecordRanking(len(kept), len(fronts))
			log.Info(ctx, "population ranked",
				logging.Int("candidates", len(kept)),
				logging.Int("excluded", len(dropped)),
				logging.Int("fronts", len(fronts)),
				logging.Int("front_zero_size", len(fronts[0])))

			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create report: %w", err)
			}
			defer out.Close()

			if err := results.WriteFrontReport(out, fronts); err != nil {
				return fmt.Errorf("write report %s: %w", outPath, err)
			}
			log.Info(ctx, "front report written", logging.String("path", outPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&solverDir, "solver-dir", "", "directory of solver run subdirectories with objective artifacts")
	cmd.Flags().StringVar(&searchFile, "search-file", "", "search generations JSON file")
	cmd.Flags().StringVar(&outPath, "out", "fronts.json", "output front report file")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while ranking")

	return cmd
}
