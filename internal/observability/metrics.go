package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce      sync.Once
	requestsTotal     *prometheus.CounterVec
	latencySeconds    *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec
	submissionsGraded prometheus.Counter
	ratingsRecomputed prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors for the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		submissionsGraded = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "assignment_submissions_graded_total",
			Help: "Total number of assignment submissions graded.",
		})

		ratingsRecomputed = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "course_rating_recomputes_total",
			Help: "Total number of course rating recomputations.",
		})

		prometheus.MustRegister(requestsTotal, latencySeconds, errorsTotal, submissionsGraded, ratingsRecomputed)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// SubmissionsGraded exposes the counter for graded submissions.
func SubmissionsGraded() prometheus.Counter {
	RegisterMetrics()
	return submissionsGraded
}

// RatingsRecomputed exposes the counter for rating recomputations.
func RatingsRecomputed() prometheus.Counter {
	RegisterMetrics()
	return ratingsRecomputed
}
