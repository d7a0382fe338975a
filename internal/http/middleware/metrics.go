package middleware

import "github.com/prometheus/client_golang/prometheus"

var (
	rlRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mines_api_requests_total",
			Help: "API requests admitted by the rate limiter, by endpoint",
		},
		[]string{"endpoint"},
	)
	rlBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mines_api_rate_limited_total",
			Help: "API requests rejected by the rate limiter, by endpoint",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(rlRequests, rlBlocked)
}
