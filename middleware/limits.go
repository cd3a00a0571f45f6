package middleware

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tau-lavender/graffity-report/utils"
)

// DefaultMaxUploadSize caps request bodies at 25 MB unless
// MAX_UPLOAD_SIZE overrides it.
const DefaultMaxUploadSize = 25 * 1024 * 1024

// MaxUploadSize reads the configured body cap in bytes.
func MaxUploadSize() int64 {
	if raw := os.Getenv("MAX_UPLOAD_SIZE"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			return v
		}
		utils.LogError(nil, "MAX_UPLOAD_SIZE is not a positive integer, using the default")
	}
	return DefaultMaxUploadSize
}

// BodySizeLimit rejects oversized requests with 413. Requests whose
// declared length exceeds the cap fail immediately; chunked bodies are
// cut off by MaxBytesReader while the multipart form is parsed.
func BodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			utils.SendError(c, http.StatusRequestEntityTooLarge, "payload too large")
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
