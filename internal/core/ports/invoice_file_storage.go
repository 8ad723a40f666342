package ports

import (
	"context"
	"io"
	"time"
)

// Disposition selects how a browser should present a downloaded file.
type Disposition string

const (
	DispositionInline     Disposition = "inline"
	DispositionAttachment Disposition = "attachment"
)

// InvoiceFileStorage stores invoice PDFs and issues time-limited download links.
type InvoiceFileStorage interface {
	Upload(ctx context.Context, objectKey string, body io.Reader, size int64, contentType string) error

	// PresignDownload returns a URL valid for ttl. filename is announced to the
	// client in the Content-Disposition header.
	PresignDownload(
		ctx context.Context,
		objectKey string,
		disposition Disposition,
		filename string,
		ttl time.Duration,
	) (string, error)
}
