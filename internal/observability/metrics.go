// Package observability holds the prometheus metrics recorded while
// computing component geometry in batches.
package observability

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes of a single component computation.
const (
	OutcomeOK         = "ok"
	OutcomeConstraint = "constraint"
	OutcomeError      = "error"
)

// GeometryCollector bundles the metrics of batch geometry computations.
type GeometryCollector struct {
	gatherer prometheus.Gatherer

	Computations *prometheus.CounterVec
	Durations    prometheus.Histogram

	CollectionMembers    prometheus.Gauge
	CollectionWettedArea prometheus.Gauge
}

// NewGeometryCollector registers geometry metrics against reg, defaulting to
// the global prometheus registry when nil.
func NewGeometryCollector(reg prometheus.Registerer) (*GeometryCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	computations, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "acgeom_computations_total",
		Help: "Component geometry computations, labeled by mounting and outcome.",
	}, []string{"mounting", "outcome"}), "acgeom_computations_total")
	if err != nil {
		return nil, err
	}
	durations, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "acgeom_computation_duration_seconds",
		Help:    "Time spent computing the geometry of one component.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	}), "acgeom_computation_duration_seconds")
	if err != nil {
		return nil, err
	}
	members, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "acgeom_collection_members",
		Help: "Number of components in the last computed collection.",
	}), "acgeom_collection_members")
	if err != nil {
		return nil, err
	}
	area, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "acgeom_collection_wetted_area_square_metres",
		Help: "Aggregate wetted area of the last computed collection.",
	}), "acgeom_collection_wetted_area_square_metres")
	if err != nil {
		return nil, err
	}
	return &GeometryCollector{
		gatherer:             gatherer,
		Computations:         computations,
		Durations:            durations,
		CollectionMembers:    members,
		CollectionWettedArea: area,
	}, nil
}

// ObserveComputation records one component computation. A nil collector is a no-op.
func (c *GeometryCollector) ObserveComputation(mounting, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Computations.WithLabelValues(mounting, outcome).Inc()
	c.Durations.Observe(elapsed.Seconds())
}

// SetCollection records the aggregate state of a collection. A nil collector is a no-op.
func (c *GeometryCollector) SetCollection(members int, wettedAreaSI float64) {
	if c == nil {
		return
	}
	c.CollectionMembers.Set(float64(members))
	c.CollectionWettedArea.Set(wettedAreaSI)
}

// WriteTextfile writes every metric gathered by the collector's registry to
// path in the text exposition format, for node_exporter's textfile collector.
func (c *GeometryCollector) WriteTextfile(path string) error {
	if c == nil {
		return errors.New("nil geometry collector")
	}
	return prometheus.WriteToTextfile(path, c.gatherer)
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

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return g, nil
}
