package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tour_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tour_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tour_upstream_requests_total",
			Help: "Total number of Tour API calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	UpstreamRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tour_upstream_retries_total",
			Help: "Total number of retried Tour API attempts",
		},
		[]string{"operation"},
	)

	PetLookupFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tour_pet_lookup_failures_total",
			Help: "Pet eligibility lookups that failed and were treated as no record",
		},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tour_cache_lookups_total",
			Help: "Redis cache lookups by cache name and result",
		},
		[]string{"cache", "result"},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordUpstream records the final outcome of a Tour API operation.
func RecordUpstream(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordCache records a cache hit or miss.
func RecordCache(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency. routeName resolves the
// templated route so label cardinality stays bounded.
func Middleware(routeName func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)
			RecordHTTPRequest(r.Method, routeName(r), rw.statusCode, time.Since(start))
		})
	}
}
