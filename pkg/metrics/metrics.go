package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/greenhouse-labs/catalog/pkg/querybuilder"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsStore interface {
	Registry() *prometheus.Registry
	RegisterCollector(c prometheus.Collector)
	Handler() http.Handler

	// HTTP
	ObserveHTTPRequest(method, route string, status int, elapsed time.Duration)

	// List queries
	ObserveListQuery(entity string, err error)
	ObserveDataSource(entity, op string, elapsed time.Duration, err error)
}

type metricsStore struct {
	registry         *prometheus.Registry
	Requests         *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	ListQueries      *prometheus.CounterVec
	DataSourceTime   *prometheus.HistogramVec
	DataSourceErrors *prometheus.CounterVec
}

var (
	MethodLabel  = "method"
	RouteLabel   = "route"
	StatusLabel  = "status"
	EntityLabel  = "entity"
	OutcomeLabel = "outcome"
	OpLabel      = "op"
)

// List query outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

func NewMetricsStore() MetricsStore {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	return &metricsStore{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{MethodLabel, RouteLabel, StatusLabel}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{MethodLabel, RouteLabel}),
		ListQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_list_queries_total",
			Help: "List queries by entity and outcome",
		}, []string{EntityLabel, OutcomeLabel}),
		DataSourceTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_datasource_duration_seconds",
			Help:    "Latency of count and find calls made for list queries",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{EntityLabel, OpLabel}),
		DataSourceErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_datasource_errors_total",
			Help: "Failed count and find calls made for list queries",
		}, []string{EntityLabel, OpLabel}),
	}
}

func (ms *metricsStore) Registry() *prometheus.Registry {
	return ms.registry
}

func (ms *metricsStore) RegisterCollector(c prometheus.Collector) {
	ms.registry.MustRegister(c)
}

func (ms *metricsStore) Handler() http.Handler {
	return promhttp.HandlerFor(ms.Registry(), promhttp.HandlerOpts{Registry: ms.Registry()})
}

func (ms *metricsStore) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	ms.Requests.With(prometheus.Labels{
		MethodLabel: method,
		RouteLabel:  route,
		StatusLabel: strconv.Itoa(status),
	}).Inc()
	ms.RequestDuration.
		With(prometheus.Labels{MethodLabel: method, RouteLabel: route}).
		Observe(elapsed.Seconds())
}

func (ms *metricsStore) ObserveListQuery(entity string, err error) {
	ms.ListQueries.With(prometheus.Labels{
		EntityLabel:  entity,
		OutcomeLabel: outcomeOf(err),
	}).Inc()
}

func (ms *metricsStore) ObserveDataSource(entity, op string, elapsed time.Duration, err error) {
	labels := prometheus.Labels{EntityLabel: entity, OpLabel: op}
	ms.DataSourceTime.With(labels).Observe(elapsed.Seconds())
	if err != nil {
		ms.DataSourceErrors.With(labels).Inc()
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, querybuilder.ErrInvalidQuery):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}
