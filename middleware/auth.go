package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RunnerSecretHeader carries the shared secret the external scheduler sends
// when triggering a batch run.
const RunnerSecretHeader = "X-Runner-Secret"

// SharedSecret rejects requests whose secret header does not match the
// configured value. An empty configured secret is a deployment fault and
// yields 500 rather than silently accepting everything.
func SharedSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"ok":    false,
				"error": "runner secret not configured",
			})
			return
		}

		provided := c.GetHeader(RunnerSecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "invalid or missing runner secret",
			})
			return
		}

		c.Next()
	}
}
