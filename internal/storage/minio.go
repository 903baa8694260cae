package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"educme-api/internal/config"
)

// minioStore implements BlobStore against an S3-compatible backend (MinIO, AWS S3, etc.).
// It is safe for concurrent use by multiple goroutines.
type minioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinIO creates a new S3-compatible blob store backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (BlobStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}

	ms := &minioStore{client: cli, bucket: cfg.Bucket, baseURL: baseURL}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

// Upload streams the payload under a generated object key (documents/<uuid><ext>)
// using streaming I/O only (no local disk). The key doubles as the storage id.
func (m *minioStore) Upload(ctx context.Context, r io.Reader, opt UploadOptions) (UploadResult, error) {
	ext := filepath.Ext(opt.OriginalFilename)
	key := "documents/" + uuid.NewString() + ext

	info, err := m.client.PutObject(ctx, m.bucket, key, r, opt.Size, minio.PutObjectOptions{
		ContentType: opt.ContentType,
		UserMetadata: map[string]string{
			"original-filename": opt.OriginalFilename,
		},
	})
	if err != nil {
		return UploadResult{}, err
	}

	return UploadResult{
		StorageID: key,
		URL:       fmt.Sprintf("%s/%s/%s", m.baseURL, m.bucket, key),
		Size:      info.Size,
	}, nil
}

// Delete removes an object by its storage id. MinIO's RemoveObject returns no
// error for a missing key, which gives the tolerant-delete contract for free.
func (m *minioStore) Delete(ctx context.Context, storageID string) error {
	return m.client.RemoveObject(ctx, m.bucket, storageID, minio.RemoveObjectOptions{})
}
