// SPDX-License-Identifier: AGPL-3.0-only
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware sets the response headers for a JSON-only API:
// no framing, no content sniffing, a CSP that forbids everything (the
// service renders no HTML), and no-store on the authenticated surface so
// session-scoped responses never land in shared caches. The image handler
// overrides Cache-Control for public media.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.HasPrefix(c.Request.URL.Path, "/account/") {
			c.Header("Cache-Control", "no-store")
		}
		c.Next()
	}
}
