package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BatchCollector bundles Prometheus metrics for the batch pipeline: trajectory
// synthesis per simulation configuration and population loading/ranking.
type BatchCollector struct {
	gatherer prometheus.Gatherer

	ConfigsProcessed  *prometheus.CounterVec
	SynthesisDuration prometheus.Histogram

	CandidatesLoaded  *prometheus.CounterVec
	CandidatesSkipped *prometheus.CounterVec
	PopulationSize    prometheus.Gauge
	ParetoFronts      prometheus.Gauge
}

// Skip reasons recorded on the candidates_skipped counter.
const (
	SkipMissingArtifact = "missing_artifact"
	SkipMalformed       = "malformed"
	SkipNonFinite       = "non_finite_objectives"
)

// NewBatchCollector registers pipeline metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
// Registration is idempotent: an already-registered collector is reused.
func NewBatchCollector(reg prometheus.Registerer) (*BatchCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	configs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simbench_configs_processed_total",
		Help: "Simulation configurations processed by trajectory synthesis, labeled by outcome.",
	}, []string{"outcome"})
	configs, err := registerCounterVec(reg, configs, "simbench_configs_processed_total")
	if err != nil {
		return nil, err
	}

	synthesis, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "simbench_synthesis_duration_seconds",
		Help:    "Wall time spent synthesizing one configuration's trajectories.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}), "simbench_synthesis_duration_seconds")
	if err != nil {
		return nil, err
	}

	loaded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simbench_candidates_loaded_total",
		Help: "Candidates loaded into a ranking population, labeled by origin.",
	}, []string{"origin"})
	loaded, err = registerCounterVec(reg, loaded, "simbench_candidates_loaded_total")
	if err != nil {
		return nil, err
	}

	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simbench_candidates_skipped_total",
		Help: "Candidates skipped while loading a population, labeled by origin and reason.",
	}, []string{"origin", "reason"})
	skipped, err = registerCounterVec(reg, skipped, "simbench_candidates_skipped_total")
	if err != nil {
		return nil, err
	}

	population, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simbench_population_size",
		Help: "Size of the most recently ranked population.",
	}), "simbench_population_size")
	if err != nil {
		return nil, err
	}

	fronts, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simbench_pareto_fronts",
		Help: "Number of non-domination fronts in the most recent ranking.",
	}), "simbench_pareto_fronts")
	if err != nil {
		return nil, err
	}

	return &BatchCollector{
		gatherer:          gatherer,
		ConfigsProcessed:  configs,
		SynthesisDuration: synthesis,
		CandidatesLoaded:  loaded,
		CandidatesSkipped: skipped,
		PopulationSize:    population,
		ParetoFronts:      fronts,
	}, nil
}

// RecordSynthesis counts one processed configuration and observes its duration.
func (c *BatchCollector) RecordSynthesis(err error, elapsed time.Duration) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if c.ConfigsProcessed != nil {
		c.ConfigsProcessed.WithLabelValues(outcome).Inc()
	}
	if c.SynthesisDuration != nil {
		c.SynthesisDuration.Observe(elapsed.Seconds())
	}
}

// AddLoaded counts candidates admitted into the population for one origin.
func (c *BatchCollector) AddLoaded(origin string, n int) {
	if c == nil || c.CandidatesLoaded == nil || n <= 0 {
		return
	}
	c.CandidatesLoaded.WithLabelValues(origin).Add(float64(n))
}

// AddSkipped counts candidates dropped while loading, by origin and reason.
func (c *BatchCollector) AddSkipped(origin, reason string, n int) {
	if c == nil || c.CandidatesSkipped == nil || n <= 0 {
		return
	}
	c.CandidatesSkipped.WithLabelValues(origin, reason).Add(float64(n))
}

// RecordRanking sets the population/front gauges for the latest ranking run.
func (c *BatchCollector) RecordRanking(populationSize, frontCount int) {
	if c == nil {
		return
	}
	if c.PopulationSize != nil {
		c.PopulationSize.Set(float64(populationSize))
	}
	if c.ParetoFronts != nil {
		c.ParetoFronts.Set(float64(frontCount))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *BatchCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
