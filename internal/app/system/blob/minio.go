package blob

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Minio talks to any S3-compatible object store (MinIO, S3, R2).
type Minio struct {
	client *minio.Client
	bucket string
	expiry time.Duration
	log    *zap.Logger
}

// Config holds the connection settings for the object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	URLExpiry time.Duration
}

// NewMinio builds the object-store client. It does not dial; connectivity
// problems surface on first use (or in EnsureBucket at startup).
func NewMinio(cfg Config, logger *zap.Logger) (*Minio, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("blob store: bucket name is required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("blob store: %w", err)
	}
	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = DefaultURLExpiry
	}
	return &Minio{client: client, bucket: cfg.Bucket, expiry: expiry, log: logger}, nil
}

// EnsureBucket creates the configured bucket if it does not exist yet.
// Called once at startup.
func (m *Minio) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("blob store: check bucket %q: %w", m.bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("blob store: create bucket %q: %w", m.bucket, err)
	}
	m.log.Info("blob bucket created", zap.String("bucket", m.bucket))
	return nil
}

// PresignedUpload mints a fresh object key and a PUT URL for it.
func (m *Minio) PresignedUpload(ctx context.Context) (Upload, error) {
	key := uuid.NewString()
	u, err := m.client.PresignedPutObject(ctx, m.bucket, key, m.expiry)
	if err != nil {
		return Upload{}, fmt.Errorf("blob store: presign upload: %w", err)
	}
	return Upload{Key: key, URL: u.String()}, nil
}

// PresignedGet resolves key to a time-limited download URL.
func (m *Minio) PresignedGet(ctx context.Context, key string) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, m.expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("blob store: presign get %q: %w", key, err)
	}
	return u.String(), nil
}

// Delete removes the object for key.
func (m *Minio) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("blob store: delete %q: %w", key, err)
	}
	return nil
}
