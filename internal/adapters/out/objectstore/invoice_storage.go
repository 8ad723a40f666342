package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"ordersync/internal/core/ports"

	"github.com/minio/minio-go/v7"
)

const defaultPresignTTL = 5 * time.Minute

// InvoiceStorage keeps invoice files in a single bucket.
type InvoiceStorage struct {
	client *minio.Client
	bucket string
}

var _ ports.InvoiceFileStorage = (*InvoiceStorage)(nil)

func NewInvoiceStorage(client *minio.Client, bucket string) (*InvoiceStorage, error) {
	if client == nil {
		return nil, errors.New("minio client is required")
	}
	if bucket == "" {
		return nil, errors.New("bucket is required")
	}
	return &InvoiceStorage{client: client, bucket: bucket}, nil
}

func (s *InvoiceStorage) Upload(ctx context.Context, objectKey string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectKey, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", s.bucket, objectKey, err)
	}
	return nil
}

// PresignDownload signs a GET that makes the browser show or save the file under filename.
func (s *InvoiceStorage) PresignDownload(
	ctx context.Context,
	objectKey string,
	disposition ports.Disposition,
	filename string,
	ttl time.Duration,
) (string, error) {
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}

	params := url.Values{}
	params.Set("response-content-disposition", ContentDisposition(disposition, filename))
	params.Set("response-content-type", "application/pdf")

	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, ttl, params)
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", s.bucket, objectKey, err)
	}
	return u.String(), nil
}

// ContentDisposition renders e.g. `attachment; filename="<id>.pdf"`.
func ContentDisposition(disposition ports.Disposition, filename string) string {
	return fmt.Sprintf("%s; filename=%q", disposition, filename)
}
