package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/application/usecases/queries"
	"ordersync/internal/core/domain/model/invoice"
	"ordersync/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type UploadInvoiceHandler interface {
	Handle(ctx context.Context, cmd commands.UploadInvoiceCommand) (*invoice.Invoice, error)
}

type GetInvoiceHandler interface {
	Handle(ctx context.Context, query queries.GetInvoiceQuery) (queries.InvoiceView, error)
}

type ListInvoicesHandler interface {
	Handle(ctx context.Context, query queries.ListInvoicesQuery) ([]queries.InvoiceView, error)
}

type InvoiceDownloadURLHandler interface {
	Handle(
		ctx context.Context,
		query queries.GetInvoiceDownloadURLQuery,
	) (queries.GetInvoiceDownloadURLQueryResponse, error)
}

type InvoiceResponse struct {
	ID        string     `json:"id"`
	OrderID   string     `json:"orderId"`
	ObjectKey string     `json:"objectKey"`
	SentAt    *time.Time `json:"sentAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

type InvoiceURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// InvoiceServer serves the invoice API.
type InvoiceServer struct {
	uploadInvoiceHandler      UploadInvoiceHandler
	getInvoiceHandler         GetInvoiceHandler
	listInvoicesHandler       ListInvoicesHandler
	invoiceDownloadURLHandler InvoiceDownloadURLHandler

	logger *slog.Logger
}

func NewInvoiceServer(
	uploadInvoiceHandler UploadInvoiceHandler,
	getInvoiceHandler GetInvoiceHandler,
	listInvoicesHandler ListInvoicesHandler,
	invoiceDownloadURLHandler InvoiceDownloadURLHandler,
	logger *slog.Logger,
) *InvoiceServer {
	return &InvoiceServer{
		uploadInvoiceHandler:      uploadInvoiceHandler,
		getInvoiceHandler:         getInvoiceHandler,
		listInvoicesHandler:       listInvoicesHandler,
		invoiceDownloadURLHandler: invoiceDownloadURLHandler,
		logger:                    logger.With("component", "invoice-http"),
	}
}

func (s *InvoiceServer) Register(e *echo.Echo) {
	g := e.Group("/api/v1/invoices")
	g.POST("/upload", s.UploadInvoice)
	g.GET("", s.ListInvoices)
	g.GET("/:id", s.GetInvoice)
	g.GET("/:id/url", s.GetInvoiceURL)
}

// UploadInvoice handles POST /api/v1/invoices/upload (multipart: orderId, file).
func (s *InvoiceServer) UploadInvoice(ctx echo.Context) error {
	orderID, err := kernel.ParseUUID("orderId", ctx.FormValue("orderId"))
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return badRequest(ctx, "file is required")
	}
	if fileHeader.Size > commands.MaxInvoiceSize {
		return badRequest(ctx, "file is too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(ctx, "file is unreadable")
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, commands.MaxInvoiceSize+1))
	if err != nil {
		return badRequest(ctx, "file is unreadable")
	}

	cmd, err := commands.NewUploadInvoiceCommand(orderID, content)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	created, err := s.uploadInvoiceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusCreated, invoiceResponse(created))
}

// ListInvoices handles GET /api/v1/invoices?orderId=.
func (s *InvoiceServer) ListInvoices(ctx echo.Context) error {
	var orderID *kernel.UUID
	if raw := ctx.QueryParam("orderId"); raw != "" {
		id, err := kernel.ParseUUID("orderId", raw)
		if err != nil {
			return respondError(ctx, s.logger, err)
		}
		orderID = &id
	}

	query, err := queries.NewListInvoicesQuery(orderID)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	views, err := s.listInvoicesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	response := make([]InvoiceResponse, len(views))
	for i, view := range views {
		response[i] = invoiceViewResponse(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetInvoice handles GET /api/v1/invoices/:id.
func (s *InvoiceServer) GetInvoice(ctx echo.Context) error {
	id, err := kernel.ParseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	query, err := queries.NewGetInvoiceQuery(id)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	view, err := s.getInvoiceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, invoiceViewResponse(view))
}

// GetInvoiceURL handles GET /api/v1/invoices/:id/url?disposition=inline|attachment.
func (s *InvoiceServer) GetInvoiceURL(ctx echo.Context) error {
	id, err := kernel.ParseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	query, err := queries.NewGetInvoiceDownloadURLQuery(id, ctx.QueryParam("disposition"))
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	link, err := s.invoiceDownloadURLHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, InvoiceURLResponse{URL: link.URL, ExpiresAt: link.ExpiresAt})
}

func invoiceResponse(inv *invoice.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:        inv.ID().String(),
		OrderID:   inv.OrderID().String(),
		ObjectKey: inv.ObjectKey(),
		SentAt:    inv.SentAt(),
		CreatedAt: inv.CreatedAt(),
	}
}

func invoiceViewResponse(v queries.InvoiceView) InvoiceResponse {
	return InvoiceResponse{
		ID:        v.ID.String(),
		OrderID:   v.OrderID.String(),
		ObjectKey: v.ObjectKey,
		SentAt:    v.SentAt,
		CreatedAt: v.CreatedAt,
	}
}
