package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estqop",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "estqop",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	reportServesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estqop",
		Subsystem: "api",
		Name:      "report_serves_total",
		Help:      "Report files served, by report name.",
	}, []string{"report"})
)

const reportRoute = "/api/v1/reports/:name"

// Metrics records per-request counters and latency. Routes are labelled by
// pattern, not raw path, to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := prometheus.NewTimer(requestDuration.WithLabelValues(routeLabel(c)))
		c.Next()
		timer.ObserveDuration()

		requestsTotal.WithLabelValues(
			c.Request.Method,
			routeLabel(c),
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		if c.FullPath() == reportRoute && c.Writer.Status() == http.StatusOK {
			reportServesTotal.WithLabelValues(c.Param("name")).Inc()
		}
	}
}

func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
