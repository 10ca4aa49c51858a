package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library-inventory/pkg/metrics"
)

// Metrics Prometheus指标中间件
// path标签使用路由模板(/api/v1/books/:barcode)，避免条码造成标签基数爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		defer metrics.DecGauge(metrics.HTTPRequestsInProgress)

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
