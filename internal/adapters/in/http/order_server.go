package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/application/usecases/queries"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
}

type UpdateOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error)
}

type CreateOrderRequest struct {
	SellerID      string `json:"sellerId"`
	CustomerID    string `json:"customerId"`
	ClientOrderID string `json:"clientOrderId"`
	ProductID     string `json:"productId"`
	PriceCents    int64  `json:"priceCents"`
	Quantity      int    `json:"quantity"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	ID            string    `json:"id"`
	SellerID      string    `json:"sellerId"`
	CustomerID    string    `json:"customerId"`
	ClientOrderID string    `json:"clientOrderId"`
	ProductID     string    `json:"productId"`
	PriceCents    int64     `json:"priceCents"`
	Quantity      int       `json:"quantity"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ListOrdersResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
}

// OrderServer serves the order API.
type OrderServer struct {
	createOrderHandler       CreateOrderHandler
	updateOrderStatusHandler UpdateOrderStatusHandler
	getOrderHandler          GetOrderHandler
	listOrdersHandler        ListOrdersHandler

	logger *slog.Logger
}

func NewOrderServer(
	createOrderHandler CreateOrderHandler,
	updateOrderStatusHandler UpdateOrderStatusHandler,
	getOrderHandler GetOrderHandler,
	listOrdersHandler ListOrdersHandler,
	logger *slog.Logger,
) *OrderServer {
	return &OrderServer{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		getOrderHandler:          getOrderHandler,
		listOrdersHandler:        listOrdersHandler,
		logger:                   logger.With("component", "order-http"),
	}
}

func (s *OrderServer) Register(e *echo.Echo) {
	g := e.Group("/api/v1/orders")
	g.POST("", s.CreateOrder)
	g.GET("", s.ListOrders)
	g.GET("/:id", s.GetOrder)
	g.PATCH("/:id/status", s.UpdateOrderStatus)
}

// CreateOrder handles POST /api/v1/orders. A replay of an existing idempotency
// key answers 200 with the stored order instead of 201.
func (s *OrderServer) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.SellerID,
		req.CustomerID,
		req.ClientOrderID,
		req.ProductID,
		req.PriceCents,
		req.Quantity,
	)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	code := http.StatusOK
	if result.Created {
		code = http.StatusCreated
	}
	return ctx.JSON(code, orderResponse(result.Order))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *OrderServer) GetOrder(ctx echo.Context) error {
	id, err := kernel.ParseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, orderViewResponse(view))
}

// ListOrders handles GET /api/v1/orders?sellerId=&customerId=&status=&limit=&skip=.
func (s *OrderServer) ListOrders(ctx echo.Context) error {
	limit, err := intParam(ctx, "limit")
	if err != nil {
		return badRequest(ctx, "limit must be an integer")
	}
	skip, err := intParam(ctx, "skip")
	if err != nil {
		return badRequest(ctx, "skip must be an integer")
	}

	query, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{
		SellerID:   ctx.QueryParam("sellerId"),
		CustomerID: ctx.QueryParam("customerId"),
		Status:     ctx.QueryParam("status"),
		Limit:      limit,
		Skip:       skip,
	})
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	page, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	response := ListOrdersResponse{
		Data:  make([]OrderResponse, len(page.Data)),
		Total: page.Total,
	}
	for i, view := range page.Data {
		response.Data[i] = orderViewResponse(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *OrderServer) UpdateOrderStatus(ctx echo.Context) error {
	id, err := kernel.ParseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	var req UpdateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, status)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(updated))
}

func intParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func orderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID().String(),
		SellerID:      o.SellerID(),
		CustomerID:    o.CustomerID(),
		ClientOrderID: o.ClientOrderID(),
		ProductID:     o.ProductID(),
		PriceCents:    o.PriceCents(),
		Quantity:      o.Quantity(),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

func orderViewResponse(v queries.OrderView) OrderResponse {
	return OrderResponse{
		ID:            v.ID.String(),
		SellerID:      v.SellerID,
		CustomerID:    v.CustomerID,
		ClientOrderID: v.ClientOrderID,
		ProductID:     v.ProductID,
		PriceCents:    v.PriceCents,
		Quantity:      v.Quantity,
		Status:        v.Status.String(),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}
