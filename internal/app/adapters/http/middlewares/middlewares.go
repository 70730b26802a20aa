package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/opfobo/taxmate-sub000/internal/app/adapters/metrics"
	"github.com/opfobo/taxmate-sub000/pkg/logger"
	"strconv"
	"time"
)

type Middlewares struct {
	log logger.Logger
}

func New(log logger.Logger) *Middlewares {
	return &Middlewares{log: log}
}

// Metrics counts requests per route template, so ids never become labels.
func (m *Middlewares) Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()

		m.log.Trace("HTTP request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"elapsed", time.Since(start),
		)
	}
}
