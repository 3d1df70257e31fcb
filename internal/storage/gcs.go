// Package storage uploads narration artifacts to durable object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSUploader writes objects to a Google Cloud Storage bucket and returns
// their public URLs.
type GCSUploader struct {
	client        *gcs.Client
	bucket        string
	publicBaseURL string
	timeout       time.Duration
}

// NewGCSUploader creates the storage client. Credentials come from the
// environment (ADC); publicBaseURL overrides the default
// storage.googleapis.com URL when a CDN fronts the bucket.
func NewGCSUploader(ctx context.Context, bucket, publicBaseURL string, timeout time.Duration, opts ...option.ClientOption) (*GCSUploader, error) {
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &GCSUploader{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		timeout:       timeout,
	}, nil
}

// Upload streams the reader into the bucket under key and returns the
// object's public URL.
func (u *GCSUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	w := u.client.Bucket(u.bucket).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return u.PublicURL(key), nil
}

// PublicURL builds the stable URL for an uploaded key.
func (u *GCSUploader) PublicURL(key string) string {
	if u.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", u.publicBaseURL, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, key)
}

// Close releases the underlying client.
func (u *GCSUploader) Close() error {
	return u.client.Close()
}
