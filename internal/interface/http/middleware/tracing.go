package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"github.com/xiebiao/library-inventory/pkg/tracing"
)

const tracerName = "library-inventory/http"

// Tracing 为每个请求创建根Span
// 上游通过traceparent头传入的Trace会被延续
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		spanName := c.FullPath()
		if spanName == "" {
			spanName = "unmatched"
		}
		ctx, span := tracing.StartSpan(ctx, tracerName, c.Request.Method+" "+spanName)
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", spanName),
		)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
		if len(c.Errors) > 0 {
			span.SetAttributes(attribute.String("app.error", c.Errors.Last().Error()))
		}
	}
}
