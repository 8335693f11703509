package httputil

import (
	"github.com/gin-gonic/gin"
)

// RequestHost returns the host the request was made against, honoring the
// de-facto standard reverse proxy headers.
//
// The scheme defaults to http and is only upgraded when x-forwarded-proto
// says the client connection was https.
func RequestHost(c *gin.Context) string {
	scheme := "http"
	if c.Request.Header.Get("x-forwarded-proto") == "https" {
		scheme = "https"
	}

	host := c.Request.Host
	var forwardedPrefix string

	// If a reverse proxy sets x-forwarded-host, links are constructed with
	// it and with x-forwarded-prefix as the path prefix.
	xForwardedHost := c.Request.Header.Get("x-forwarded-host")
	if xForwardedHost != "" {
		host = xForwardedHost
		forwardedPrefix = c.Request.Header.Get("x-forwarded-prefix")
	}

	return scheme + "://" + host + forwardedPrefix
}

// RequestURL returns the full request URL without the query string.
func RequestURL(c *gin.Context) string {
	return RequestHost(c) + c.Request.URL.Path
}
