package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultBucket = "graffiti-photos"

// Storage is the gateway to the S3-compatible content bucket. A nil
// client means storage is unconfigured; every call then degrades
// instead of failing the process.
type Storage struct {
	client *minio.Client
	bucket string
}

// NewStorageFromEnv builds the process-wide storage gateway from
// S3_ENDPOINT / S3_ACCESS_KEY / S3_SECRET_KEY / S3_BUCKET / S3_USE_SSL.
// Missing configuration yields an unconfigured gateway, not an error:
// the service must start without object storage.
func NewStorageFromEnv() *Storage {
	endpoint := os.Getenv("S3_ENDPOINT")
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		bucket = defaultBucket
	}

	if endpoint == "" || accessKey == "" || secretKey == "" {
		LogInfo("S3 storage is not configured, photo upload is disabled")
		return &Storage{bucket: bucket}
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: os.Getenv("S3_USE_SSL") == "true",
	})
	if err != nil {
		LogError(err, "Cannot create the S3 client, photo upload is disabled")
		return &Storage{bucket: bucket}
	}

	return &Storage{client: client, bucket: bucket}
}

// Configured reports whether a usable S3 client exists.
func (s *Storage) Configured() bool {
	return s != nil && s.client != nil
}

// EnsureBucket creates the content bucket if it does not exist yet.
// Called once at startup; logs the outcome and never fails the caller.
func (s *Storage) EnsureBucket(ctx context.Context) {
	if !s.Configured() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		LogWarning(err, "Cannot check the S3 bucket, continuing without storage verification")
		return
	}
	if exists {
		LogInfo("S3 bucket " + s.bucket + " is ready")
		return
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		LogWarning(err, "Cannot create the S3 bucket "+s.bucket)
		return
	}
	LogSuccess("S3 bucket " + s.bucket + " created")
}

// Upload stores the photo bytes under key. The caller must treat an
// error as "not stored" and write no metadata for it.
func (s *Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if !s.Configured() {
		return fmt.Errorf("object storage is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("error uploading %s: %w", key, err)
	}
	return nil
}

// Download returns the stored bytes for key.
func (s *Storage) Download(ctx context.Context, key string) ([]byte, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("object storage is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", key, err)
	}
	return data, nil
}

// PresignedURL returns a time-limited GET URL for key. The second
// return value is false when storage is unconfigured or the call
// fails; presigning must not raise.
func (s *Storage) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, bool) {
	if !s.Configured() {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		LogWarning(err, "Cannot presign "+key)
		return "", false
	}
	return u.String(), true
}

// Delete removes the object for key, tolerating absence.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if !s.Configured() {
		return fmt.Errorf("object storage is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// Ping checks bucket reachability for the storage health probe.
func (s *Storage) Ping(ctx context.Context) error {
	if !s.Configured() {
		return fmt.Errorf("object storage is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return err
	}
	return nil
}

// PhotoObjectKey builds the bucket key for one uploaded photo:
// photos/{reportId}/{uuid}.{ext}. The random UUID rules out collisions
// across concurrent uploads for the same report.
func PhotoObjectKey(reportID int, filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("photos/%d/%s.%s", reportID, uuid.NewString(), ext)
}

// DetectPhotoContentType infers a MIME type from the object key for
// the download endpoint, falling back to content sniffing.
func DetectPhotoContentType(key string, data []byte) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	case ".svg":
		return "image/svg+xml"
	}
	if len(data) > 512 {
		data = data[:512]
	}
	return http.DetectContentType(data)
}
