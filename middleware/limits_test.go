package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedRouter(maxBytes int64) *gin.Engine {
	r := gin.New()
	r.Use(BodySizeLimit(maxBytes))
	r.POST("/upload", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func TestBodySizeLimit_RejectsOversizedBody(t *testing.T) {
	r := newLimitedRouter(16)

	body := bytes.Repeat([]byte("x"), 64)
	req, _ := http.NewRequest(http.MethodPost, "/upload", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}

func TestBodySizeLimit_AllowsSmallBody(t *testing.T) {
	r := newLimitedRouter(1024)

	req, _ := http.NewRequest(http.MethodPost, "/upload", bytes.NewReader([]byte("tiny")))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestMaxUploadSize_Default(t *testing.T) {
	t.Setenv("MAX_UPLOAD_SIZE", "")
	assert.Equal(t, int64(DefaultMaxUploadSize), MaxUploadSize())

	t.Setenv("MAX_UPLOAD_SIZE", "1048576")
	assert.Equal(t, int64(1048576), MaxUploadSize())

	t.Setenv("MAX_UPLOAD_SIZE", "not-a-number")
	assert.Equal(t, int64(DefaultMaxUploadSize), MaxUploadSize())
}
