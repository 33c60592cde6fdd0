package results

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/meshfoundry/wsn-simbench/internal/logging"
	"github.com/meshfoundry/wsn-simbench/model"
)

// LoadStats counts what happened while assembling a population. Skips are
// expected in partial or in-progress batches and are reported, never fatal.
type LoadStats struct {
	Loaded           int
	MissingArtifacts int
	Malformed        int
	NonFinite        int
}

// LoadSolverPopulation walks a directory of per-case subdirectories, each
// expected to hold an objectives artifact, and returns one candidate per
// case. Cases without the artifact are skipped and counted; malformed
// artifacts are skipped, counted, and logged with the offending path.
func LoadSolverPopulation(ctx context.Context, dir string, log logging.Logger) ([]*model.Candidate, LoadStats, error) {
	if log == nil {
		log = logging.Noop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("LoadSolverPopulation: %w", err)
	}

	var (
		population []*model.Candidate
		stats      LoadStats
	)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		artifactPath := filepath.Join(dir, entry.Name(), ObjectivesFileName)
		if _, err := os.Stat(artifactPath); err != nil {
			stats.MissingArtifacts++
			continue
		}

		obj, err := ReadObjectivesFile(artifactPath)
		if err != nil {
			stats.Malformed++
			log.Warn(ctx, "skipping malformed solver artifact",
				logging.String("path", artifactPath),
				logging.String("error", err.Error()),
			)
			continue
		}

		population = append(population, &model.Candidate{
			ID:         fmt.Sprintf("MILP-%s", entry.Name()),
			Origin:     model.OriginSolver,
			Generation: model.GenerationNone,
			Objectives: obj,
			Rank:       model.RankUnassigned,
		})
		stats.Loaded++
	}
	return population, stats, nil
}

// searchEntryJSON is one heuristic-search individual inside a generation.
type searchEntryJSON struct {
	SimulationID string         `json:"simulation_id"`
	Objectives   objectivesJSON `json:"objectives"`
}

// LoadSearchPopulation reads the heuristic search's results file: a mapping
// of generation index to the individuals evaluated in that generation.
// Generations whose key does not parse as an integer are skipped and
// counted as malformed; a file that does not decode at all is fatal.
func LoadSearchPopulation(ctx context.Context, path string, log logging.Logger) ([]*model.Candidate, LoadStats, error) {
	if log == nil {
		log = logging.Noop()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("LoadSearchPopulation: %w", err)
	}
	defer f.Close()

	var payload map[string][]searchEntryJSON
	if err := json.NewDecoder(f).Decode(&payload); err != nil {
		return nil, LoadStats{}, &DataFormatError{Path: path, Err: err}
	}

	// Deterministic order: generations numerically, entries file order.
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		gi, erri := strconv.Atoi(keys[i])
		gj, errj := strconv.Atoi(keys[j])
		if erri == nil && errj == nil {
			return gi < gj
		}
		return keys[i] < keys[j]
	})

	var (
		population []*model.Candidate
		stats      LoadStats
	)
	for _, key := range keys {
		generation, err := strconv.Atoi(key)
		if err != nil {
			stats.Malformed += len(payload[key])
			log.Warn(ctx, "skipping generation with non-integer key",
				logging.String("path", path),
				logging.String("generation", key),
			)
			continue
		}
		for _, entry := range payload[key] {
			population = append(population, &model.Candidate{
				ID:         entry.SimulationID,
				Origin:     model.OriginSearch,
				Generation: generation,
				Objectives: entry.Objectives.toModel(),
				Rank:       model.RankUnassigned,
			})
			stats.Loaded++
		}
	}
	return population, stats, nil
}

// FilterFinite splits a population into rankable candidates and those whose
// objective vector carries NaN or Inf. The latter cannot participate in
// dominance and must not reach the ranker.
func FilterFinite(population []*model.Candidate) (kept, dropped []*model.Candidate) {
	for _, c := range population {
		if c.Objectives.IsFinite() {
			kept = append(kept, c)
		} else {
			dropped = append(dropped, c)
		}
	}
	return kept, dropped
}
