package utils

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func unconfiguredStorage(t *testing.T) *Storage {
	t.Setenv("S3_ENDPOINT", "")
	t.Setenv("S3_ACCESS_KEY", "")
	t.Setenv("S3_SECRET_KEY", "")
	t.Setenv("S3_BUCKET", "")
	return NewStorageFromEnv()
}

func TestStorage_UnconfiguredDegrades(t *testing.T) {
	s := unconfiguredStorage(t)
	ctx := context.Background()

	assert.False(t, s.Configured())

	// EnsureBucket must be a no-op, not a crash.
	s.EnsureBucket(ctx)

	err := s.Upload(ctx, "photos/1/a.jpg", strings.NewReader("x"), 1, "image/jpeg")
	assert.Error(t, err)

	_, err = s.Download(ctx, "photos/1/a.jpg")
	assert.Error(t, err)

	url, ok := s.PresignedURL(ctx, "photos/1/a.jpg", time.Hour)
	assert.False(t, ok)
	assert.Empty(t, url)

	assert.Error(t, s.Ping(ctx))
}

func TestPhotoObjectKey(t *testing.T) {
	key := PhotoObjectKey(12, "Wall Art.PNG")
	assert.Regexp(t, regexp.MustCompile(`^photos/12/[0-9a-f-]{36}\.png$`), key)

	key = PhotoObjectKey(3, "no-extension")
	assert.Regexp(t, regexp.MustCompile(`^photos/3/[0-9a-f-]{36}\.jpg$`), key)

	// Two uploads for the same report never collide.
	assert.NotEqual(t, PhotoObjectKey(1, "a.jpg"), PhotoObjectKey(1, "a.jpg"))
}

func TestDetectPhotoContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", DetectPhotoContentType("photos/1/a.jpg", nil))
	assert.Equal(t, "image/jpeg", DetectPhotoContentType("photos/1/a.jpeg", nil))
	assert.Equal(t, "image/png", DetectPhotoContentType("photos/1/a.png", nil))
	assert.Equal(t, "image/webp", DetectPhotoContentType("photos/1/a.webp", nil))

	// Unknown extension falls back to sniffing the bytes.
	pngMagic := []byte("\x89PNG\r\n\x1a\n")
	assert.Equal(t, "image/png", DetectPhotoContentType("photos/1/blob", pngMagic))
}
