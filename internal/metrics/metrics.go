package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "marketplace",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	productsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "products_created_total",
			Help:      "Products listed by sellers.",
		},
	)

	sales = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "sales_total",
			Help:      "Products marked as sold.",
		},
	)

	sellersDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "sellers_deleted_total",
			Help:      "Seller accounts removed by an administrator.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		productsCreated,
		sales,
		sellersDeleted,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func ProductCreated() { productsCreated.Inc() }
func SaleRecorded() { sales.Inc() }
func SellerDeleted() { sellersDeleted.Inc() }
