package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Dashboard development hosts. Production traffic is same-origin behind the
// load balancer, so no wildcard is needed here.
var allowedOrigins = map[string]bool{
	"http://localhost":      true,
	"http://localhost:3000": true,
	"http://localhost:8080": true,
	"http://127.0.0.1":      true,
}

// CORSMiddleware answers preflight requests and sets CORS headers for the
// dashboard origins.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.Request.Header.Get("Origin"); allowedOrigins[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-Id")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-Id")
		c.Writer.Header().Set("Access-Control-Max-Age", "3600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
