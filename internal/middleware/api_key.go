package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyHeader carries the shared key on write requests.
const APIKeyHeader = "X-API-Key"

// KeyVerifier checks a presented API key.
type KeyVerifier interface {
	VerifyAPIKey(key string) error
}

// APIKey rejects requests whose X-API-Key header does not verify.
func APIKey(verifier KeyVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := verifier.VerifyAPIKey(c.GetHeader(APIKeyHeader)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
			return
		}
		c.Next()
	}
}
