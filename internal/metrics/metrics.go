package metrics

import (
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		},
		[]string{"route", "method", "code"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "market_http_request_duration_seconds",
			Help:    "Duration of each HTTP request in seconds.",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 5},
		},
		[]string{"route"},
	)
	TransitionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_job_transitions_total",
			Help: "Total number of job lifecycle transitions.",
		},
		[]string{"transition"},
	)
	CleanedJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "market_jobs_cleaned_total",
			Help: "Total number of completed jobs removed by the retention cleaner.",
		},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(RequestsCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(TransitionsCounter)
	prometheus.MustRegister(CleanedJobsCounter)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), mux))
	}()
}
