package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores del catálogo sobre un registro propio.
// Todos los métodos aceptan un receptor nil, así los tests no necesitan registrar nada.
type Metrics struct {
	registry        *prometheus.Registry
	namespace       string
	searchDuration  *prometheus.HistogramVec
	droppedCriteria *prometheus.CounterVec
	bulkAffected    *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	m := &Metrics{
		registry:  prometheus.NewRegistry(),
		namespace: namespace,
	}
	_ = m.registry.Register(prometheus.NewGoCollector())
	_ = m.registry.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m.searchDuration = m.newHistogram("search_duration_seconds", "Search latency per entity.", []string{"entity"}, prometheus.DefBuckets)
	m.droppedCriteria = m.newCounter("search_dropped_criteria_total", "Filter, range and sort entries dropped while compiling a search.", []string{"entity"})
	m.bulkAffected = m.newCounter("bulk_affected_records_total", "Records changed by bulk operations.", []string{"entity", "operation"})
	return m
}

func (m *Metrics) fqName(name string) string {
	if m.namespace == "" {
		return name
	}
	return m.namespace + "_" + name
}

func (m *Metrics) newCounter(name, help string, labels []string) *prometheus.CounterVec {
	cv := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: m.fqName(name),
		Help: help,
	}, labels)
	m.registry.MustRegister(cv)
	return cv
}

func (m *Metrics) newHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    m.fqName(name),
		Help:    help,
		Buckets: buckets,
	}, labels)
	m.registry.MustRegister(hv)
	return hv
}

func (m *Metrics) ObserveSearch(entity string, elapsed time.Duration, dropped int) {
	if m == nil {
		return
	}
	m.searchDuration.WithLabelValues(entity).Observe(elapsed.Seconds())
	if dropped > 0 {
		m.droppedCriteria.WithLabelValues(entity).Add(float64(dropped))
	}
}

func (m *Metrics) AddBulk(entity, operation string, affected int) {
	if m == nil || affected <= 0 {
		return
	}
	m.bulkAffected.WithLabelValues(entity, operation).Add(float64(affected))
}

// Registry expone el registro para tests y colectores adicionales.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler sirve /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
