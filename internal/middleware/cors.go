package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS answers cross-origin requests from the configured origin allowlist.
// allowedOrigins is a comma-separated list; "*" (or empty) allows any origin.
// With an explicit list, the request Origin is echoed back only when it
// matches, and Vary: Origin keeps caches from serving one origin's response
// to another.
func CORS(allowedOrigins string) gin.HandlerFunc {
	allowedOrigins = strings.TrimSpace(allowedOrigins)
	allowAll := allowedOrigins == "" || allowedOrigins == "*"

	allowed := make(map[string]bool)
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case allowed[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
