package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the gin context key holding the request ID.
const ContextKeyRequestID = "request_id"

// HeaderRequestID is the header the ID is read from and echoed back on.
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware assigns each request an ID for log and envelope
// correlation. An inbound X-Request-ID is trusted and propagated so callers
// can trace a request across services; otherwise a fresh UUID is minted.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
