package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationRecorder counts the remote operations issued by an order composer.
// It has its own registry so a client process can export it without the server series.
type OperationRecorder struct {
	registry *prometheus.Registry

	operations    *prometheus.CounterVec
	operationTime *prometheus.HistogramVec
}

func NewOperationRecorder() *OperationRecorder {
	r := &OperationRecorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "composer_operations_total",
				Help: "Remote operations issued by the order composer, by result",
			},
			[]string{"operation", "result"},
		),
		operationTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "composer_operation_duration_seconds",
				Help:    "Time taken by order composer remote operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	r.registry.MustRegister(r.operations, r.operationTime)
	return r
}

// Registry returns the underlying prometheus registry
func (r *OperationRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveOperation records the outcome of one composer operation
func (r *OperationRecorder) ObserveOperation(operation string, elapsed time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	r.operations.WithLabelValues(operation, result).Inc()
	r.operationTime.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// WriteTextfile writes the recorded series in the text exposition format, for the
// node_exporter textfile collector
func (r *OperationRecorder) WriteTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, r.registry)
}
