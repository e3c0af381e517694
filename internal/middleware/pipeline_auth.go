package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyHeader carries the device key on inbox uploads.
const APIKeyHeader = "X-API-Key"

// PipelineAuthMiddleware guards the inbox upload endpoints with a shared
// device key. Uploads are refused outright while no key is configured.
func PipelineAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				gin.H{"error": gin.H{"code": "INBOX_NOT_CONFIGURED", "message": "Message upload is not configured"}})
			return
		}
		key := c.GetHeader(APIKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": gin.H{"code": "INVALID_API_KEY", "message": "Invalid or missing API key"}})
			return
		}
		c.Next()
	}
}
