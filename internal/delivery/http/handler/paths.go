package handler

import "github.com/gin-gonic/gin"

// Routes of the two-step enrollment protocol. The issued profile
// embeds CallbackPath, and successful callbacks redirect to the
// detail view under DeviceDetailPath.
const (
	ProfilePath      = "/issue-profile"
	CallbackPath     = "/reconcile-callback"
	DeviceDetailPath = "/device"
)

// requestBaseURL reconstructs the origin the request arrived on, so
// issued profiles and redirects work on whatever domain the service is
// deployed behind.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + c.Request.Host
}
