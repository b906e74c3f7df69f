package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheConfig represents cache control configuration
type CacheConfig struct {
	MaxAge         int
	Public         bool
	MustRevalidate bool
	Vary           []string
}

// CatalogCacheConfig is used on the read-only catalog routes; their
// data changes rarely.
func CatalogCacheConfig() CacheConfig {
	return CacheConfig{
		MaxAge: 300,
		Public: true,
		Vary:   []string{"Accept"},
	}
}

// CacheControl adds cache headers to GET responses.
func CacheControl(config CacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Header("Cache-Control", "no-store")
			c.Next()
			return
		}

		directives := make([]string, 0, 3)
		if config.Public {
			directives = append(directives, "public")
		} else {
			directives = append(directives, "private")
		}
		if config.MaxAge > 0 {
			directives = append(directives, "max-age="+strconv.Itoa(config.MaxAge))
		}
		if config.MustRevalidate {
			directives = append(directives, "must-revalidate")
		}

		c.Header("Cache-Control", strings.Join(directives, ", "))
		if len(config.Vary) > 0 {
			c.Header("Vary", strings.Join(config.Vary, ", "))
		}
		c.Next()
	}
}
