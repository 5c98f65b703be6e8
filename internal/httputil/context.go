package httputil

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

type ContextKey string

// ContextURL is the gin context key holding the external base URL of the API.
const ContextURL ContextKey = "ContextURL"

func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(ContextURL), url.String())
		c.Next()
	}
}

// URL returns the external base URL joined with the path.
func URL(c *gin.Context, path string) string {
	return c.GetString(string(ContextURL)) + path
}
