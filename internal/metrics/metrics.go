// Package metrics defines the Prometheus metrics the server exports.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/afjrotc/logistics/internal/store"
)

const namespace = "logistics"

// Metrics holds the collectors that the store and HTTP layers update.
type Metrics struct {
	Registry *prometheus.Registry

	KVOperations *prometheus.CounterVec
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates the metrics and registers them, along with the Go runtime and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		KVOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kv_operations_total",
			Help:      "Key-value store operations by operation and result.",
		}, []string{"op", "result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.Registry.MustRegister(
		m.KVOperations,
		m.HTTPRequests,
		m.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// StatsSource yields the current inventory totals.
type StatsSource interface {
	Statistics() store.Stats
}

// RegisterInventory exports the totals of src as gauges read at scrape time.
func (m *Metrics) RegisterInventory(src StatsSource) {
	m.Registry.MustRegister(&inventoryCollector{src: src})
}

var (
	itemsTotalDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "inventory", "items"),
		"Total quantity of all items.", nil, nil)
	itemsInUseDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "inventory", "in_use"),
		"Quantity currently checked out.", nil, nil)
	lowStockDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "inventory", "low_stock"),
		"Number of items with fewer than five available.", nil, nil)
	needsRepairDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "inventory", "needs_repair"),
		"Number of items needing repair.", nil, nil)
)

type inventoryCollector struct {
	src StatsSource
}

func (c *inventoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- itemsTotalDesc
	ch <- itemsInUseDesc
	ch <- lowStockDesc
	ch <- needsRepairDesc
}

func (c *inventoryCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Statistics()
	ch <- prometheus.MustNewConstMetric(itemsTotalDesc, prometheus.GaugeValue, float64(s.Total))
	ch <- prometheus.MustNewConstMetric(itemsInUseDesc, prometheus.GaugeValue, float64(s.InUse))
	ch <- prometheus.MustNewConstMetric(lowStockDesc, prometheus.GaugeValue, float64(s.LowStock))
	ch <- prometheus.MustNewConstMetric(needsRepairDesc, prometheus.GaugeValue, float64(s.NeedsRepair))
}
