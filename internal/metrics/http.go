package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "safetybot_http_requests",
	Help: "The total number of HTTP requests",
}, []string{"method", "path"})

var HttpResponses = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "safetybot_http_responses",
	Help: "The total number of HTTP responses by status",
}, []string{"method", "path", "status"})

func RecordHttpRequest(method, path string) {
	HttpRequests.With(prometheus.Labels{
		"method": method,
		"path":   path,
	}).Inc()
}

func RecordHttpResponse(method, path string, status int) {
	HttpResponses.With(prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}).Inc()
}
