package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/greenhouse-labs/catalog/internal/constants"
	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
	"github.com/greenhouse-labs/catalog/pkg/logger"
)

// RequestContext stores the request ID, client IP, user agent and start time
// on the request context. An incoming X-Request-ID is kept, otherwise a new
// one is generated. The ID is echoed in the response header.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := c.Request.Context()
		ctx = ctxutil.WithValue(ctx, ctxutil.RequestIDKey, requestID)
		ctx = ctxutil.WithValue(ctx, ctxutil.ClientIPKey, c.ClientIP())
		ctx = ctxutil.WithValue(ctx, ctxutil.UserAgentKey, c.Request.UserAgent())
		ctx = ctxutil.WithValue(ctx, ctxutil.StartTimeKey, time.Now())
		c.Request = c.Request.WithContext(ctx)

		c.Header(constants.HeaderXRequestID, requestID)
		c.Next()
	}
}

// RequestTimeout bounds the request context. Handlers and the data layer see
// the deadline through ctx.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			logger.WarnWithContext(ctx, "Request timed out").
				Duration(timeout).
				Log()
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, constants.BuildErrorResponse("Request timeout", nil))
		}
	}
}
