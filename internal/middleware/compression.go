package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// ImageProxyPath is the route that streams product images.
const ImageProxyPath = "/api/v1/proxy-image"

// Compression gzips JSON responses. Proxied product images and static
// image files are already compressed and are passed through untouched.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{ImageProxyPath}),
		gzip.WithExcludedExtensions([]string{".png", ".jpg", ".jpeg", ".gif", ".webp"}),
	)
}
