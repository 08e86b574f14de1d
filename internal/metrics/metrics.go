package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_errors_total",
			Help: "Total number of logged errors by error type and level.",
		},
		[]string{"type", "level"},
	)
	ApplicationEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_applications_total",
			Help: "Total number of application lifecycle events.",
		},
		[]string{"event"},
	)
	StatusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_application_status_transitions_total",
			Help: "Total number of applied application status transitions.",
		},
		[]string{"from", "to"},
	)
	JobsClosed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobportal_jobs_closed_total",
			Help: "Total number of jobs closed after expiry.",
		},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobportal_http_request_duration_seconds",
			Help:    "Duration of handled http requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(ApplicationEvents)
		prometheus.MustRegister(StatusTransitions)
		prometheus.MustRegister(JobsClosed)
		prometheus.MustRegister(RequestDuration)
	})
}

func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
