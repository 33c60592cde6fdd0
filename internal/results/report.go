package results

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/meshfoundry/wsn-simbench/model"
)

// FrontReport is the ranked-population artifact emitted instead of plots:
// every front in rank order with each candidate's identity and objectives.
type FrontReport struct {
	PopulationSize int           `json:"population_size"`
	Fronts         []frontReport `json:"fronts"`
}

type frontReport struct {
	Rank       int               `json:"rank"`
	Candidates []candidateReport `json:"candidates"`
}

type candidateReport struct {
	ID         string         `json:"id"`
	Origin     model.Origin   `json:"origin"`
	Generation int            `json:"generation"`
	Objectives objectivesJSON `json:"objectives"`
}

// NewFrontReport builds the report for a ranked population.
func NewFrontReport(fronts []model.Front) *FrontReport {
	report := &FrontReport{}
	for rank, front := range fronts {
		fr := frontReport{Rank: rank, Candidates: make([]candidateReport, 0, len(front))}
		for _, c := range front {
			fr.Candidates = append(fr.Candidates, candidateReport{
				ID:         c.ID,
				Origin:     c.Origin,
				Generation: c.Generation,
				Objectives: objectivesToJSON(c.Objectives),
			})
			report.PopulationSize++
		}
		report.Fronts = append(report.Fronts, fr)
	}
	return report
}

// WriteFrontReport renders the report as indented JSON.
func WriteFrontReport(w io.Writer, fronts []model.Front) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewFrontReport(fronts)); err != nil {
		return fmt.Errorf("WriteFrontReport: %w", err)
	}
	return nil
}
