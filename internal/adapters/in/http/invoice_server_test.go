package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/application/usecases/queries"
	"ordersync/internal/core/domain/model/invoice"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pdf = []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n%%EOF\n")

type invoiceServerFixture struct {
	echo   *echo.Echo
	upload *MockUploadInvoiceHandler
	get    *MockGetInvoiceHandler
	list   *MockListInvoicesHandler
	url    *MockInvoiceDownloadURLHandler
}

func newInvoiceServerFixture() invoiceServerFixture {
	f := invoiceServerFixture{
		echo:   echo.New(),
		upload: new(MockUploadInvoiceHandler),
		get:    new(MockGetInvoiceHandler),
		list:   new(MockListInvoicesHandler),
		url:    new(MockInvoiceDownloadURLHandler),
	}
	NewInvoiceServer(f.upload, f.get, f.list, f.url, slog.New(slog.DiscardHandler)).Register(f.echo)
	return f
}

func (f invoiceServerFixture) getPath(target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func (f invoiceServerFixture) uploadForm(t *testing.T, orderID string, file []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("orderId", orderID))
	if file != nil {
		part, err := w.CreateFormFile("file", "invoice.pdf")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/upload", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func TestInvoiceServer_UploadInvoice(t *testing.T) {
	t.Run("201 with the stored invoice", func(t *testing.T) {
		f := newInvoiceServerFixture()
		orderID := kernel.NewUUID()
		stored, err := invoice.NewInvoice(kernel.NewUUID(), orderID, invoice.ObjectKey(orderID, kernel.NewUUID()), now)
		require.NoError(t, err)
		f.upload.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UploadInvoiceCommand) bool {
			return cmd.OrderID().IsEqual(orderID) && bytes.Equal(cmd.Content(), pdf)
		})).Return(stored, nil).Once()

		rec := f.uploadForm(t, orderID.String(), pdf)

		require.Equal(t, http.StatusCreated, rec.Code)
		var body InvoiceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, stored.ID().String(), body.ID)
		assert.Equal(t, orderID.String(), body.OrderID)
		assert.Nil(t, body.SentAt)
	})

	t.Run("409 when the order already has an invoice", func(t *testing.T) {
		f := newInvoiceServerFixture()
		f.upload.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewConflictError("invoice already exists")).Once()

		rec := f.uploadForm(t, kernel.NewUUID().String(), pdf)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("400 on non pdf", func(t *testing.T) {
		f := newInvoiceServerFixture()

		rec := f.uploadForm(t, kernel.NewUUID().String(), []byte("hello"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.upload.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("400 without file", func(t *testing.T) {
		f := newInvoiceServerFixture()

		rec := f.uploadForm(t, kernel.NewUUID().String(), nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("400 on bad order id", func(t *testing.T) {
		f := newInvoiceServerFixture()

		rec := f.uploadForm(t, "42", pdf)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestInvoiceServer_GetInvoice(t *testing.T) {
	t.Run("200", func(t *testing.T) {
		f := newInvoiceServerFixture()
		id := kernel.NewUUID()
		sentAt := now.Add(time.Hour)
		f.get.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetInvoiceQuery) bool {
			return q.InvoiceID().IsEqual(id)
		})).Return(queries.InvoiceView{ID: id, OrderID: kernel.NewUUID(), SentAt: &sentAt, CreatedAt: now}, nil).Once()

		rec := f.getPath("/api/v1/invoices/" + id.String())

		require.Equal(t, http.StatusOK, rec.Code)
		var body InvoiceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotNil(t, body.SentAt)
		assert.True(t, sentAt.Equal(*body.SentAt))
	})

	t.Run("404", func(t *testing.T) {
		f := newInvoiceServerFixture()
		f.get.On("Handle", mock.Anything, mock.Anything).
			Return(queries.InvoiceView{}, errs.NewObjectNotFoundError("invoice", "x")).Once()

		rec := f.getPath("/api/v1/invoices/" + kernel.NewUUID().String())

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestInvoiceServer_ListInvoices(t *testing.T) {
	f := newInvoiceServerFixture()
	orderID := kernel.NewUUID()
	f.list.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListInvoicesQuery) bool {
		return q.OrderID() != nil && q.OrderID().IsEqual(orderID)
	})).Return([]queries.InvoiceView{{ID: kernel.NewUUID(), OrderID: orderID, CreatedAt: now}}, nil).Once()

	rec := f.getPath("/api/v1/invoices?orderId=" + orderID.String())

	require.Equal(t, http.StatusOK, rec.Code)
	var body []InvoiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 1)
}

func TestInvoiceServer_GetInvoiceURL(t *testing.T) {
	t.Run("passes disposition and returns the link", func(t *testing.T) {
		f := newInvoiceServerFixture()
		id := kernel.NewUUID()
		expiresAt := now.Add(5 * time.Minute)
		f.url.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetInvoiceDownloadURLQuery) bool {
			return q.InvoiceID().IsEqual(id) && q.Disposition() == ports.DispositionInline
		})).Return(queries.GetInvoiceDownloadURLQueryResponse{URL: "https://files/x", ExpiresAt: expiresAt}, nil).Once()

		rec := f.getPath("/api/v1/invoices/" + id.String() + "/url?disposition=inline")

		require.Equal(t, http.StatusOK, rec.Code)
		var body InvoiceURLResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "https://files/x", body.URL)
		assert.True(t, expiresAt.Equal(body.ExpiresAt))
	})

	t.Run("400 on unknown disposition", func(t *testing.T) {
		f := newInvoiceServerFixture()

		rec := f.getPath("/api/v1/invoices/" + kernel.NewUUID().String() + "/url?disposition=download")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
