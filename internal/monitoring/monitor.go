package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector handles prometheus metrics for the food API server
type Collector struct {
	registry  *prometheus.Registry
	startTime time.Time

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	ordersCreated   prometheus.Counter
	orderExtras     prometheus.Histogram
	favorites       *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry
func NewCollector() *Collector {
	c := &Collector{
		registry:  prometheus.NewRegistry(),
		startTime: time.Now(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodapi_http_requests_total",
				Help: "HTTP requests served, by route and status code",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "foodapi_http_request_duration_seconds",
				Help:    "Time taken to serve HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foodapi_orders_created_total",
			Help: "Orders accepted by the API",
		}),
		orderExtras: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "foodapi_order_extras",
			Help:    "Number of distinct extras per accepted order",
			Buckets: prometheus.LinearBuckets(0, 1, 8),
		}),
		favorites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodapi_favorite_changes_total",
				Help: "Favorite additions and removals",
			},
			[]string{"action"},
		),
	}

	c.registry.MustRegister(
		c.requests,
		c.requestDuration,
		c.ordersCreated,
		c.orderExtras,
		c.favorites,
	)
	return c
}

// Registry returns the underlying prometheus registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Uptime returns the time since the collector was created
func (c *Collector) Uptime() time.Duration {
	return time.Since(c.startTime)
}

// ObserveRequest records one served HTTP request
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordOrderCreated records an accepted order with the given number of extras
func (c *Collector) RecordOrderCreated(extras int) {
	c.ordersCreated.Inc()
	c.orderExtras.Observe(float64(extras))
}

// RecordFavorite records a favorite change; action is "add" or "remove"
func (c *Collector) RecordFavorite(action string) {
	c.favorites.WithLabelValues(action).Inc()
}
