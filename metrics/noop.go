package metrics

import (
	"time"
)

// noopFactory hands out metrics that record nothing. It serves every run that exports no
// metrics file.
type noopFactory struct{}

func (*noopFactory) NewCounter(opts CounterOpts) Counter {
	return noopCounter{}
}

func (*noopFactory) NewCounterVec(opts CounterOpts, labelNames []string) Vec[Counter] {
	return noopCounter{}
}

func (*noopFactory) NewGauge(opts GaugeOpts) Gauge {
	return noopGauge{}
}

func (*noopFactory) NewHistogram(opts HistogramOpts) Histogram {
	return noopHistogram{}
}

func (*noopFactory) NewHistogramVec(opts HistogramOpts, labelNames []string) Vec[Histogram] {
	return noopHistogram{}
}

func (*noopFactory) NewTimer(o Observer) Timer {
	return noopTimer{}
}

type noopCounter struct{}

func (counter noopCounter) Inc()        {}
func (counter noopCounter) Add(float64) {}
func (counter noopCounter) WithLabelValues(lvls ...string) Counter {
	return noopCounter{}
}

type noopGauge struct{}

func (gauge noopGauge) Set(float64) {}
func (gauge noopGauge) Inc()        {}
func (gauge noopGauge) Dec()        {}
func (gauge noopGauge) Add(float64) {}
func (gauge noopGauge) Sub(float64) {}

type noopHistogram struct{}

func (histogram noopHistogram) Observe(float64) {}
func (histogram noopHistogram) WithLabelValues(lvls ...string) Histogram {
	return noopHistogram{}
}

type noopTimer struct{}

func (timer noopTimer) ObserveDuration() time.Duration {
	return 0
}
