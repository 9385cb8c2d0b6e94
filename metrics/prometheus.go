package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var defaultPromRegistry = PrometheusRegistry()

// PrometheusRegistry returns a registry holding the build info and Go runtime collectors.
func PrometheusRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewBuildInfoCollector())
	registry.MustRegister(collectors.NewGoCollector())
	return registry
}

// PrometheusFactory registers metrics with registry, the package registry when nil. Before
// Enable it returns the no-op factory, so commands run without a metrics file register
// nothing.
func PrometheusFactory(registry *prometheus.Registry) Factory {
	if !enabled {
		return &noopFactory{}
	}
	if registry == nil {
		registry = defaultPromRegistry
	}
	return &prometheusFactory{factory: promauto.With(registry)}
}

// WriteTextfile writes the current value of every metric of registry to path, in the text
// format read by the node exporter textfile collector. A batch process has no endpoint to
// be scraped from, so this is how its metrics leave it.
func WriteTextfile(path string, registry *prometheus.Registry) error {
	if registry == nil {
		registry = defaultPromRegistry
	}
	return prometheus.WriteToTextfile(path, registry)
}

// prometheusFactory registers every metric it creates through promauto.
type prometheusFactory struct {
	factory promauto.Factory
}

func (d *prometheusFactory) NewCounter(opts CounterOpts) Counter {
	return d.factory.NewCounter(prometheus.CounterOpts{
		Namespace: opts.Namespace,
		Subsystem: opts.Subsystem,
		Name:      opts.Name,
		Help:      opts.Help,
	})
}

func (d *prometheusFactory) NewCounterVec(opts CounterOpts, labelNames []string) Vec[Counter] {
	return promCounterVec{d.factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: opts.Namespace,
		Subsystem: opts.Subsystem,
		Name:      opts.Name,
		Help:      opts.Help,
	}, labelNames)}
}

func (d *prometheusFactory) NewGauge(opts GaugeOpts) Gauge {
	return d.factory.NewGauge(prometheus.GaugeOpts{
		Namespace: opts.Namespace,
		Subsystem: opts.Subsystem,
		Name:      opts.Name,
		Help:      opts.Help,
	})
}

func (d *prometheusFactory) NewHistogram(opts HistogramOpts) Histogram {
	return d.factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: opts.Namespace,
		Subsystem: opts.Subsystem,
		Name:      opts.Name,
		Help:      opts.Help,
		Buckets:   opts.Buckets,
	})
}

func (d *prometheusFactory) NewHistogramVec(opts HistogramOpts, labelNames []string) Vec[Histogram] {
	return promHistogramVec{d.factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: opts.Namespace,
		Subsystem: opts.Subsystem,
		Name:      opts.Name,
		Help:      opts.Help,
		Buckets:   opts.Buckets,
	}, labelNames)}
}

func (d *prometheusFactory) NewTimer(o Observer) Timer {
	return prometheus.NewTimer(o)
}

type promCounterVec struct {
	v *prometheus.CounterVec
}

func (c promCounterVec) WithLabelValues(lvls ...string) Counter {
	return c.v.WithLabelValues(lvls...)
}

type promHistogramVec struct {
	v *prometheus.HistogramVec
}

func (c promHistogramVec) WithLabelValues(lvls ...string) Histogram {
	return c.v.WithLabelValues(lvls...)
}
