package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the model builder
type Registry struct {
	// Entity population, labelled by entity kind
	EntitiesTotal *prometheus.GaugeVec

	// Builder operations, labelled by operation and outcome
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Canonicalization hits: an add_* call that returned an existing
	// entity instead of creating one, labelled by entity kind
	DedupHitsTotal *prometheus.CounterVec

	// Load attachment ledger mutations, labelled by load kind and verb
	AttachmentsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.EntitiesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "strfem_model_entities_total",
			Help: "Number of entities in the model by kind",
		},
		[]string{"kind"},
	)

	r.OperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "strfem_model_operations_total",
			Help: "Total number of model builder operations",
		},
		[]string{"operation", "status"},
	)

	r.OperationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strfem_model_operation_duration_seconds",
			Help:    "Model builder operation duration in seconds",
			Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
		[]string{"operation"},
	)

	r.DedupHitsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "strfem_model_dedup_hits_total",
			Help: "Canonicalization hits that returned an existing entity",
		},
		[]string{"kind"},
	)

	r.AttachmentsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "strfem_model_attachments_total",
			Help: "Load attachment ledger mutations",
		},
		[]string{"kind", "verb"},
	)

	return r
}

// RecordOperation records a builder operation with its duration
func (r *Registry) RecordOperation(operation, status string, duration time.Duration) {
	r.OperationsTotal.WithLabelValues(operation, status).Inc()
	r.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetEntityCount sets the population gauge for an entity kind
func (r *Registry) SetEntityCount(kind string, n int) {
	r.EntitiesTotal.WithLabelValues(kind).Set(float64(n))
}

// RecordDedupHit counts an add_* call that was absorbed by canonicalization
func (r *Registry) RecordDedupHit(kind string) {
	r.DedupHitsTotal.WithLabelValues(kind).Inc()
}

// RecordAttachment counts a load attach/detach ledger mutation
func (r *Registry) RecordAttachment(kind, verb string) {
	r.AttachmentsTotal.WithLabelValues(kind, verb).Inc()
}

// PrometheusRegistry exposes the underlying registry for scraping setups
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global registry instance
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
