package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/eduportal/resources-service/internal/config"
)

// Service wraps the MinIO bucket holding uploaded course resources.
type Service struct {
	client     *minio.Client
	bucketName string
	useSSL     bool
}

// NewService creates the blob store client and ensures the bucket exists.
func NewService(cfg *config.Config) (*Service, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKeyID, cfg.MinIO.SecretAccessKey, ""),
		Secure: cfg.MinIO.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	service := &Service{
		client:     client,
		bucketName: cfg.MinIO.BucketName,
		useSSL:     cfg.MinIO.UseSSL,
	}

	if err := service.ensureBucket(); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return service, nil
}

func (s *Service) ensureBucket() error {
	ctx := context.Background()

	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Upload writes file bytes to the given path and returns the stored path.
func (s *Service) Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucketName, path, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	return path, nil
}

// Remove deletes a stored object.
func (s *Service) Remove(ctx context.Context, path string) error {
	return s.client.RemoveObject(ctx, s.bucketName, path, minio.RemoveObjectOptions{})
}

// PublicURL returns the direct URL for a stored object. With MinIO in
// development this points at the bucket itself; behind a CDN it would be
// rewritten at the edge.
func (s *Service) PublicURL(path string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}

	endpoint := strings.TrimPrefix(s.client.EndpointURL().String(), scheme+"://")
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, s.bucketName, path)
}

// PresignedDownloadURL creates a time-limited download URL for an object.
func (s *Service) PresignedDownloadURL(ctx context.Context, path string, expiry time.Duration) (*url.URL, error) {
	return s.client.PresignedGetObject(ctx, s.bucketName, path, expiry, nil)
}

// StatObject returns metadata for a stored object.
func (s *Service) StatObject(ctx context.Context, path string) (minio.ObjectInfo, error) {
	return s.client.StatObject(ctx, s.bucketName, path, minio.StatObjectOptions{})
}

// ListObjects walks every object in the bucket.
func (s *Service) ListObjects(ctx context.Context) ([]minio.ObjectInfo, error) {
	var objects []minio.ObjectInfo
	objectsCh := s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{
		Recursive: true,
	})

	for object := range objectsCh {
		if object.Err != nil {
			return nil, object.Err
		}
		objects = append(objects, object)
	}

	return objects, nil
}
