package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/maxaizer/gig-market/internal/metrics"
	"golang.org/x/time/rate"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)

		metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		metrics.RequestsCounter.WithLabelValues(route, r.Method, strconv.Itoa(recorder.status)).Inc()
	})
}

func rateLimitMiddleware(maxRequestsPerSecond float32) mux.MiddlewareFunc {

	var limiter *rate.Limiter
	if maxRequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), int(maxRequestsPerSecond)+1)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter != nil && !limiter.Allow() {
				_ = respondJSON(w, http.StatusTooManyRequests, errorBody("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
