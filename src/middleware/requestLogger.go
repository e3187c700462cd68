package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, echoing one supplied by the client, and logs
// the outcome once the handler returns. Server errors are logged at warn level.
func RequestLogger(logger log.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header(RequestIDHeader, requestID)

		start := time.Now()
		ctx.Next()

		status := ctx.Writer.Status()
		logLevel := level.Info
		if status >= 500 {
			logLevel = level.Warn
		}
		keyvals := []interface{}{
			"msg", "request handled",
			"request_id", requestID,
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
		}
		if len(ctx.Errors) > 0 {
			keyvals = append(keyvals, "err", ctx.Errors.String())
		}
		logLevel(logger).Log(keyvals...)
	}
}
