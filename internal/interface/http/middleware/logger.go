package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xiebiao/library-inventory/pkg/logger"
	"github.com/xiebiao/library-inventory/pkg/response"
)

// RequestIDHeader 请求ID响应头
const RequestIDHeader = "X-Request-ID"

// slowRequestThreshold 慢请求阈值
const slowRequestThreshold = 3 * time.Second

// RequestLogger 请求日志中间件
//
// 教学要点：
// 1. 沿用客户端传入的X-Request-ID，没有时生成UUID
// 2. 请求ID写入context，下游日志自动带上request_id字段
// 3. 每个请求结束记录方法、路径、状态码、耗时；业务错误码来自c.Errors
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		ctx := log.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		response.SetLogger(c, log)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   latency.String(),
			"client_ip": c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		entryCtx := log.WithFields(ctx, fields)

		switch {
		case latency > slowRequestThreshold:
			log.Warn(entryCtx, "慢请求", nil)
		case len(c.Errors) > 0:
			log.Info(entryCtx, "请求失败")
		default:
			log.Debug(entryCtx, "请求完成")
		}
	}
}
