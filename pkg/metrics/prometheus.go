// Package metrics provides Prometheus metrics for the footprint estimation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Estimation
	estimates         *prometheus.CounterVec
	estimateFallbacks *prometheus.CounterVec
	estimateLatency   *prometheus.HistogramVec
	estimatedMass     *prometheus.HistogramVec
	estimateErrors    *prometheus.CounterVec
	routeLookups      *prometheus.CounterVec

	// Batches
	batchesSubmitted prometheus.Counter
	batchesDuplicate prometheus.Counter
	batchesCompleted prometheus.Counter
	batchItems       *prometheus.CounterVec
	batchesStored    prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Queue
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueued    prometheus.Counter
	queueDequeued    prometheus.Counter
	queueRejected    *prometheus.CounterVec

	// Workers
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // metrics exist before main runs
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "footprint",
		subsystem:        "estimator",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gauge(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place to declare every collector
	auto := promauto.With(m.registry)

	m.estimates = auto.NewCounterVec(m.counter("estimates_total", "Estimates computed, by facet and confidence level"),
		[]string{"facet", "confidence"})
	m.estimateFallbacks = auto.NewCounterVec(m.counter("estimate_fallbacks_total", "Estimates that filled in at least one default"),
		[]string{"facet"})
	m.estimateLatency = auto.NewHistogramVec(m.histogram("estimate_latency_milliseconds", "Time to compute one estimate", m.histogramBuckets),
		[]string{"facet"})
	m.estimatedMass = auto.NewHistogramVec(m.histogram("estimated_mass_kg", "Estimated kg CO2e per estimate",
		prometheus.ExponentialBuckets(10, 4, 10)), []string{"facet"})
	m.estimateErrors = auto.NewCounterVec(m.counter("estimate_errors_total", "Estimates rejected before computation"),
		[]string{"reason"})
	m.routeLookups = auto.NewCounterVec(m.counter("route_lookups_total", "Route distance lookups by outcome"),
		[]string{"outcome"})

	m.batchesSubmitted = auto.NewCounter(m.counter("batches_submitted_total", "Batches accepted for processing"))
	m.batchesDuplicate = auto.NewCounter(m.counter("batches_duplicate_total", "Batch submissions answered from an idempotency key"))
	m.batchesCompleted = auto.NewCounter(m.counter("batches_completed_total", "Batches with every item processed"))
	m.batchItems = auto.NewCounterVec(m.counter("batch_items_total", "Batch items processed by outcome"), []string{"outcome"})
	m.batchesStored = auto.NewGauge(m.gauge("batches_stored", "Batches held in the job store"))

	m.httpRequests = auto.NewCounterVec(m.counter("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogram("http_request_duration_milliseconds", "HTTP request duration", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.queueSize = auto.NewGauge(m.gauge("queue_size", "Batch items waiting in the queue"))
	m.queueCapacity = auto.NewGauge(m.gauge("queue_capacity", "Maximum batch items the queue holds"))
	m.queueUtilization = auto.NewGauge(m.gauge("queue_utilization_ratio", "Queue size divided by capacity"))
	m.queueEnqueued = auto.NewCounter(m.counter("queue_enqueued_total", "Batch items enqueued"))
	m.queueDequeued = auto.NewCounter(m.counter("queue_dequeued_total", "Batch items handed to workers"))
	m.queueRejected = auto.NewCounterVec(m.counter("queue_rejected_total", "Enqueue attempts refused"), []string{"reason"})

	m.workerCount = auto.NewGauge(m.gauge("worker_count", "Workers in the pool"))
	m.workerProcessingLatency = auto.NewHistogram(m.histogram("worker_processing_latency_milliseconds", "Time to process one batch item", m.histogramBuckets))
	m.workerErrors = auto.NewCounter(m.counter("worker_errors_total", "Batch items a worker failed to record"))

	m.errorsByComponent = auto.NewCounterVec(m.counter("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"})
	m.errorsByEndpoint = auto.NewCounterVec(m.counter("errors_by_endpoint_total", "HTTP errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gauge("system_memory_usage_bytes", "Allocated heap bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gauge("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogram("system_gc_pause_time_milliseconds", "Average GC pause",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordEstimate counts a computed estimate and observes its latency and mass.
func (m *Manager) RecordEstimate(facet, confidence string, fellBack bool, latencyMs, massKg float64) {
	m.estimates.WithLabelValues(facet, confidence).Inc()
	if fellBack {
		m.estimateFallbacks.WithLabelValues(facet).Inc()
	}
	m.estimateLatency.WithLabelValues(facet).Observe(latencyMs)
	m.estimatedMass.WithLabelValues(facet).Observe(massKg)
}

// RecordEstimateError counts an estimate that could not be computed.
func (m *Manager) RecordEstimateError(reason string) {
	m.estimateErrors.WithLabelValues(reason).Inc()
}

// RecordRouteLookup counts a route lookup: resolved, unknown or ignored.
func (m *Manager) RecordRouteLookup(outcome string) {
	m.routeLookups.WithLabelValues(outcome).Inc()
}

// RecordEstimate records on the process-wide manager.
func RecordEstimate(facet, confidence string, fellBack bool, latencyMs, massKg float64) {
	globalManager.RecordEstimate(facet, confidence, fellBack, latencyMs, massKg)
}

// RecordEstimateError records on the process-wide manager.
func RecordEstimateError(reason string) { globalManager.RecordEstimateError(reason) }

// RecordRouteLookup records on the process-wide manager.
func RecordRouteLookup(outcome string) { globalManager.RecordRouteLookup(outcome) }

// RecordBatchSubmitted increments the accepted batches counter.
func RecordBatchSubmitted() { globalManager.batchesSubmitted.Inc() }

// RecordBatchDuplicate increments the idempotent replay counter.
func RecordBatchDuplicate() { globalManager.batchesDuplicate.Inc() }

// RecordBatchCompleted increments the completed batches counter.
func RecordBatchCompleted() { globalManager.batchesCompleted.Inc() }

// RecordBatchItem counts one processed item by outcome: ok or failed.
func RecordBatchItem(outcome string) { globalManager.batchItems.WithLabelValues(outcome).Inc() }

// UpdateBatchesStored sets the number of stored batches.
func UpdateBatchesStored(count int) { globalManager.batchesStored.Set(float64(count)) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) { globalManager.queueSize.Set(float64(size)) }

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) { globalManager.queueUtilization.Set(utilization) }

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueRejected counts a refused enqueue: closed, full or cancelled.
func RecordQueueRejected(reason string) { globalManager.queueRejected.WithLabelValues(reason).Inc() }

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) { globalManager.workerCount.Set(float64(count)) }

// RecordWorkerProcessingLatency records the time spent on one batch item.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// RecordErrorByComponent records an error for a specific component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an HTTP error for a specific endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutineCount.Set(float64(count)) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
