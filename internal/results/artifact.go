// Package results loads and stores the artifacts surrounding one batch run:
// per-run objectives files, raw measurement tables, and the candidate
// populations assembled from the exact solver and the heuristic search.
package results

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/meshfoundry/wsn-simbench/model"
)

// ObjectivesFileName is the per-run artifact holding the scalar objective
// vector.
const ObjectivesFileName = "objectives.json"

// DataFormatError reports a malformed result artifact, naming the file it
// came from. Population loaders skip the offending entry and keep going;
// single-artifact callers treat it as fatal for that run.
type DataFormatError struct {
	Path string
	Err  error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("malformed result data %s: %v", e.Path, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// objectivesJSON uses pointers so a missing objective round-trips as JSON
// null: the JSON grammar has no NaN literal.
type objectivesJSON struct {
	Latency    *float64 `json:"latency"`
	Energy     *float64 `json:"energy"`
	Throughput *float64 `json:"throughput"`
}

func (j objectivesJSON) toModel() model.Objectives {
	deref := func(p *float64) float64 {
		if p == nil {
			return math.NaN()
		}
		return *p
	}
	return model.Objectives{
		Latency:    deref(j.Latency),
		Energy:     deref(j.Energy),
		Throughput: deref(j.Throughput),
	}
}

func objectivesToJSON(o model.Objectives) objectivesJSON {
	ref := func(v float64) *float64 {
		if math.IsNaN(v) {
			return nil
		}
		return &v
	}
	return objectivesJSON{
		Latency:    ref(o.Latency),
		Energy:     ref(o.Energy),
		Throughput: ref(o.Throughput),
	}
}

// WriteObjectives stores an objective vector as the objectives artifact.
// NaN values are encoded as null.
func WriteObjectives(w io.Writer, o model.Objectives) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(objectivesToJSON(o)); err != nil {
		return fmt.Errorf("WriteObjectives: %w", err)
	}
	return nil
}

// ReadObjectives parses an objectives artifact; null or missing objectives
// come back as NaN.
func ReadObjectives(r io.Reader) (model.Objectives, error) {
	var payload objectivesJSON
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return model.Objectives{}, err
	}
	return payload.toModel(), nil
}

// ReadObjectivesFile reads the artifact at path, wrapping parse failures in a
// DataFormatError that names the file.
func ReadObjectivesFile(path string) (model.Objectives, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Objectives{}, err
	}
	defer f.Close()

	obj, err := ReadObjectives(f)
	if err != nil {
		return model.Objectives{}, &DataFormatError{Path: path, Err: err}
	}
	return obj, nil
}
