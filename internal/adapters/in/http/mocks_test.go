package http

import (
	"context"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/application/usecases/queries"
	"ordersync/internal/core/domain/model/invoice"
	"ordersync/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateOrderResult), args.Error(1)
}

type MockUpdateOrderStatusHandler struct{ mock.Mock }

func (m *MockUpdateOrderStatusHandler) Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ListOrdersQueryResponse), args.Error(1)
}

type MockUploadInvoiceHandler struct{ mock.Mock }

func (m *MockUploadInvoiceHandler) Handle(ctx context.Context, cmd commands.UploadInvoiceCommand) (*invoice.Invoice, error) {
	args := m.Called(ctx, cmd)
	inv, _ := args.Get(0).(*invoice.Invoice)
	return inv, args.Error(1)
}

type MockGetInvoiceHandler struct{ mock.Mock }

func (m *MockGetInvoiceHandler) Handle(ctx context.Context, query queries.GetInvoiceQuery) (queries.InvoiceView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.InvoiceView), args.Error(1)
}

type MockListInvoicesHandler struct{ mock.Mock }

func (m *MockListInvoicesHandler) Handle(ctx context.Context, query queries.ListInvoicesQuery) ([]queries.InvoiceView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.InvoiceView)
	return views, args.Error(1)
}

type MockInvoiceDownloadURLHandler struct{ mock.Mock }

func (m *MockInvoiceDownloadURLHandler) Handle(
	ctx context.Context,
	query queries.GetInvoiceDownloadURLQuery,
) (queries.GetInvoiceDownloadURLQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetInvoiceDownloadURLQueryResponse), args.Error(1)
}
