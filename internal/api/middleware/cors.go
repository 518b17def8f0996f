package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// CORSConfig controls which browser origins may upload clips, poll their status
// and play back the audio.
type CORSConfig struct {
	// AllowOrigins lists exact origins; "*" or an empty list allows any.
	AllowOrigins []string
	MaxAge       time.Duration
}

// DefaultCORSConfig allows any origin and caches preflights for an hour.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		MaxAge:       time.Hour,
	}
}

// routeMethods is checked in order; the first matching prefix wins.
var routeMethods = []struct {
	prefix  string
	methods []string
}{
	{"/api/v1/clips", []string{http.MethodGet, http.MethodPost, http.MethodPut}},
	{"/storage/audio/", []string{http.MethodGet}},
	{"/status/", []string{http.MethodGet}},
	{"/debug/", []string{http.MethodGet}},
	{"/store", []string{http.MethodPost}},
}

// AllowedMethods returns the methods the API accepts on path.
func AllowedMethods(path string) []string {
	for _, r := range routeMethods {
		if strings.HasPrefix(path, r.prefix) {
			return r.methods
		}
	}
	return []string{http.MethodGet}
}

// Content-Type covers JSON bodies and multipart uploads.
var (
	corsAllowHeaders  = strings.Join([]string{"Content-Type", "X-Request-ID"}, ", ")
	corsExposeHeaders = strings.Join([]string{"X-Request-ID", "Content-Length", "Content-Disposition"}, ", ")
)

// CORS answers preflights with the methods of the requested route. Requests
// without an Origin header pass through untouched.
func CORS(config CORSConfig) gin.HandlerFunc {
	anyOrigin := len(config.AllowOrigins) == 0 || lo.Contains(config.AllowOrigins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		allowed := anyOrigin || lo.Contains(config.AllowOrigins, origin)
		preflight := c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != ""

		if !allowed {
			if preflight {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		if anyOrigin {
			c.Header("Access-Control-Allow-Origin", "*")
		} else {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Expose-Headers", corsExposeHeaders)

		if !preflight {
			c.Next()
			return
		}

		methods := AllowedMethods(c.Request.URL.Path)
		if !lo.Contains(methods, c.GetHeader("Access-Control-Request-Method")) {
			c.AbortWithStatus(http.StatusMethodNotAllowed)
			return
		}

		c.Header("Access-Control-Allow-Methods", strings.Join(methods, ", "))
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
		if config.MaxAge > 0 {
			c.Header("Access-Control-Max-Age", strconv.Itoa(int(config.MaxAge.Seconds())))
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}
