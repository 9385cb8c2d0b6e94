package store

import (
	"github.com/NethermindEth/flatconv/flatbuf"
	"github.com/NethermindEth/flatconv/metrics"
	"github.com/pkg/errors"
)

const (
	opPut    = "put"
	opGet    = "get"
	opDelete = "delete"
)

type storeMetrics struct {
	operations metrics.Vec[metrics.Counter]
	durations  metrics.Vec[metrics.Histogram]
	graphBytes metrics.Histogram
	graphs     metrics.Gauge
	malformed  metrics.Counter
	factory    metrics.Factory
}

func newStoreMetrics(factory metrics.Factory) *storeMetrics {
	return &storeMetrics{
		operations: factory.NewCounterVec(metrics.CounterOpts{
			Namespace: "flatconv",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Store operations by outcome",
		}, []string{"op", "outcome"}),
		durations: factory.NewHistogramVec(metrics.HistogramOpts{
			Namespace: "flatconv",
			Subsystem: "store",
			Name:      "operation_seconds",
			Help:      "Store operation latency",
		}, []string{"op"}),
		graphBytes: factory.NewHistogram(metrics.HistogramOpts{
			Namespace: "flatconv",
			Subsystem: "store",
			Name:      "graph_bytes",
			Help:      "Size of encoded graphs written to the store",
			Buckets:   []float64{256, 1024, 4096, 16384, 65536, 262144, 1048576},
		}),
		graphs: factory.NewGauge(metrics.GaugeOpts{
			Namespace: "flatconv",
			Subsystem: "store",
			Name:      "graphs",
			Help:      "Number of stored graphs",
		}),
		malformed: factory.NewCounter(metrics.CounterOpts{
			Namespace: "flatconv",
			Subsystem: "store",
			Name:      "malformed_total",
			Help:      "Stored graphs that failed to decode",
		}),
		factory: factory,
	}
}

// observe starts timing op. The returned func records the outcome held by err.
func (m *storeMetrics) observe(op string) func(err *error) {
	timer := m.factory.NewTimer(m.durations.WithLabelValues(op))
	return func(err *error) {
		timer.ObserveDuration()
		outcome := "ok"
		if *err != nil {
			outcome = "error"
		}
		if errors.Is(*err, flatbuf.ErrMalformed) {
			m.malformed.Inc()
		}
		m.operations.WithLabelValues(op, outcome).Inc()
	}
}
