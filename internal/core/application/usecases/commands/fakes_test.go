package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/domain/model/invoice"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/domain/model/projection"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/clock"
	"ordersync/internal/pkg/errs"
)

var (
	testNow    = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	testClock  = clock.NewFixed(testNow)
	testLogger = slog.New(slog.DiscardHandler)
)

// memStore is an in-memory stand-in for the Postgres stores. It enforces the
// same uniqueness constraints and conditional updates under a single mutex.
type memStore struct {
	mu sync.Mutex

	orders      map[kernel.UUID]*order.Order
	projections map[kernel.UUID]*projection.OrderProjection
	invoices    map[kernel.UUID]*invoice.Invoice

	invoiceReads  int
	invoiceWrites int

	// projectionWriteErr, when set, is returned by projection writes instead
	// of applying them.
	projectionWriteErr func() error
}

func newMemStore() *memStore {
	return &memStore{
		orders:      make(map[kernel.UUID]*order.Order),
		projections: make(map[kernel.UUID]*projection.OrderProjection),
		invoices:    make(map[kernel.UUID]*invoice.Invoice),
	}
}

func cloneOrder(o *order.Order) *order.Order {
	c, _ := order.RestoreOrder(o.ID(), o.IdempotencyKey(), o.ProductID(), o.PriceCents(), o.Quantity(),
		o.Status(), o.CreatedAt(), o.UpdatedAt())
	return c
}

func cloneProjection(p *projection.OrderProjection) *projection.OrderProjection {
	c, _ := projection.RestoreOrderProjection(p.OrderID(), p.Status(), p.UpdatedAt())
	return c
}

func cloneInvoice(i *invoice.Invoice) *invoice.Invoice {
	var sentAt *time.Time
	if i.SentAt() != nil {
		t := *i.SentAt()
		sentAt = &t
	}
	c, _ := invoice.RestoreInvoice(i.ID(), i.OrderID(), i.ObjectKey(), sentAt, i.CreatedAt())
	return c
}

// seedOrder stores an order already in the given status.
func (s *memStore) seedOrder(status order.Status) *order.Order {
	key, _ := order.NewIdempotencyKey("seller-1", kernel.NewUUID().String(), "customer-1")
	o, _ := order.RestoreOrder(kernel.NewUUID(), key, "sku-1", 1000, 1, status, testNow, testNow)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID()] = cloneOrder(o)
	return o
}

func (s *memStore) seedProjection(orderID kernel.UUID, status order.Status) {
	p, _ := projection.RestoreOrderProjection(orderID, status, testNow)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projections[orderID] = p
}

func (s *memStore) seedInvoice(orderID kernel.UUID, sentAt *time.Time) *invoice.Invoice {
	inv, _ := invoice.RestoreInvoice(kernel.NewUUID(), orderID,
		invoice.ObjectKey(orderID, kernel.NewUUID()), sentAt, testNow)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[inv.ID()] = cloneInvoice(inv)
	return inv
}

func (s *memStore) order(id kernel.UUID) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		return cloneOrder(o)
	}
	return nil
}

func (s *memStore) projection(orderID kernel.UUID) *projection.OrderProjection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projections[orderID]; ok {
		return cloneProjection(p)
	}
	return nil
}

func (s *memStore) invoiceOf(orderID kernel.UUID) *invoice.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invoices {
		if inv.OrderID().IsEqual(orderID) {
			return cloneInvoice(inv)
		}
	}
	return nil
}

func (s *memStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoiceWrites
}

func (s *memStore) reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoiceReads
}

type memOrderRepository struct{ s *memStore }

func (r memOrderRepository) Add(_ context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, stored := range r.s.orders {
		if stored.IdempotencyKey() == o.IdempotencyKey() {
			return ports.ErrUniqueViolation
		}
	}
	r.s.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[id]; ok {
		return cloneOrder(o), nil
	}
	return nil, errs.NewObjectNotFoundError("order", id)
}

func (r memOrderRepository) FindByIdempotencyKey(_ context.Context, key order.IdempotencyKey) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.IdempotencyKey() == key {
			return cloneOrder(o), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", key.ClientOrderID())
}

func (r memOrderRepository) UpdateStatus(_ context.Context, o *order.Order, expected order.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[o.ID()]
	if !ok || stored.Status() != expected {
		return ports.ErrConditionNotMet
	}
	r.s.orders[o.ID()] = cloneOrder(o)
	return nil
}

type memProjectionRepository struct{ s *memStore }

func (r memProjectionRepository) Get(_ context.Context, orderID kernel.UUID) (*projection.OrderProjection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.projections[orderID]; ok {
		return cloneProjection(p), nil
	}
	return nil, errs.NewObjectNotFoundError("orderProjection", orderID)
}

func (r memProjectionRepository) Add(_ context.Context, p *projection.OrderProjection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.projectionWriteErr != nil {
		if err := r.s.projectionWriteErr(); err != nil {
			return err
		}
	}
	if _, ok := r.s.projections[p.OrderID()]; ok {
		return ports.ErrUniqueViolation
	}
	r.s.projections[p.OrderID()] = cloneProjection(p)
	return nil
}

func (r memProjectionRepository) UpdateStatus(
	_ context.Context,
	p *projection.OrderProjection,
	expected order.Status,
) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.projectionWriteErr != nil {
		if err := r.s.projectionWriteErr(); err != nil {
			return err
		}
	}
	stored, ok := r.s.projections[p.OrderID()]
	if !ok || stored.Status() != expected {
		return ports.ErrConditionNotMet
	}
	r.s.projections[p.OrderID()] = cloneProjection(p)
	return nil
}

type memInvoiceRepository struct{ s *memStore }

func (r memInvoiceRepository) Add(_ context.Context, inv *invoice.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, stored := range r.s.invoices {
		if stored.OrderID().IsEqual(inv.OrderID()) {
			return ports.ErrUniqueViolation
		}
	}
	r.s.invoices[inv.ID()] = cloneInvoice(inv)
	return nil
}

func (r memInvoiceRepository) Get(_ context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv, ok := r.s.invoices[id]; ok {
		return cloneInvoice(inv), nil
	}
	return nil, errs.NewObjectNotFoundError("invoice", id)
}

func (r memInvoiceRepository) GetByOrderID(_ context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invoiceReads++
	for _, inv := range r.s.invoices {
		if inv.OrderID().IsEqual(orderID) {
			return cloneInvoice(inv), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("invoice", orderID)
}

func (r memInvoiceRepository) MarkSent(_ context.Context, orderID kernel.UUID, sentAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invoiceWrites++
	for id, inv := range r.s.invoices {
		if inv.OrderID().IsEqual(orderID) && !inv.IsSent() {
			updated := cloneInvoice(inv)
			_ = updated.MarkSent(sentAt)
			r.s.invoices[id] = updated
			return nil
		}
	}
	return ports.ErrConditionNotMet
}

type memUoW struct{ s *memStore }

func (memUoW) Begin(context.Context) error    { return nil }
func (memUoW) Commit(context.Context) error   { return nil }
func (memUoW) Rollback(context.Context) error { return nil }

func (u memUoW) OrderRepository() ports.OrderRepository {
	return memOrderRepository(u)
}

func (u memUoW) OrderProjectionRepository() ports.OrderProjectionRepository {
	return memProjectionRepository(u)
}

func (u memUoW) InvoiceRepository() ports.InvoiceRepository {
	return memInvoiceRepository(u)
}

type memOrderUoWFactory struct{ s *memStore }

func (f memOrderUoWFactory) Create() commands.OrderUoW { return memUoW(f) }

type memInvoiceUoWFactory struct{ s *memStore }

func (f memInvoiceUoWFactory) Create() commands.InvoiceUoW { return memUoW(f) }

type emittedEvent struct {
	orderID kernel.UUID
	status  order.Status
}

// recordingEmitter records emitted events and fails with err when set.
type recordingEmitter struct {
	mu     sync.Mutex
	events []emittedEvent
	err    error
}

func (e *recordingEmitter) Emit(_ context.Context, orderID kernel.UUID, status order.Status) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.events = append(e.events, emittedEvent{orderID: orderID, status: status})
	return nil
}

func (e *recordingEmitter) emitted() []emittedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]emittedEvent(nil), e.events...)
}

type memFileStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newMemFileStorage() *memFileStorage {
	return &memFileStorage{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (m *memFileStorage) Upload(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if m.err != nil {
		return m.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	m.types[key] = contentType
	return nil
}

func (m *memFileStorage) PresignDownload(
	_ context.Context,
	key string,
	disposition ports.Disposition,
	filename string,
	_ time.Duration,
) (string, error) {
	return "https://files.local/" + key + "?disposition=" + string(disposition) + "&name=" + filename, nil
}
