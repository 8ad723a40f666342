package queries

import (
	"errors"
	"strings"

	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/errs"
	"ordersync/internal/pkg/guard"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersFilter narrows the order listing. Empty fields do not filter.
// A zero Limit selects DefaultListLimit.
type ListOrdersFilter struct {
	SellerID   string
	CustomerID string
	Status     string
	Limit      int
	Skip       int
}

// ListOrdersQuery pages through orders, newest first.
//
// Example:
//
//	query, err := NewListOrdersQuery(ListOrdersFilter{SellerID: "seller-1", Limit: 50})
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
//	fmt.Printf("%d of %d orders", len(page.Data), page.Total)
type ListOrdersQuery struct {
	sellerID   string
	customerID string
	status     order.Status
	limit      int
	skip       int

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(filter ListOrdersFilter) (ListOrdersQuery, error) {
	query := ListOrdersQuery{
		sellerID:   strings.TrimSpace(filter.SellerID),
		customerID: strings.TrimSpace(filter.CustomerID),
		limit:      filter.Limit,
		skip:       filter.Skip,
		guard:      guard.NewConstructorGuard(),
	}

	if query.limit == 0 {
		query.limit = DefaultListLimit
	}

	var statusErr error
	if filter.Status != "" {
		query.status, statusErr = order.ParseStatus(filter.Status)
	}

	var limitErr, skipErr error
	if query.limit < 1 || query.limit > MaxListLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", query.limit, 1, MaxListLimit)
	}
	if query.skip < 0 {
		skipErr = errs.NewValueIsOutOfRangeError("skip", query.skip, 0, "max int")
	}

	if err := errors.Join(statusErr, limitErr, skipErr); err != nil {
		return ListOrdersQuery{}, err
	}

	return query, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) SellerID() string {
	return q.sellerID
}

func (q ListOrdersQuery) CustomerID() string {
	return q.customerID
}

// Status is empty when the listing is not filtered by status.
func (q ListOrdersQuery) Status() order.Status {
	return q.status
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q ListOrdersQuery) Skip() int {
	return q.skip
}

// ListOrdersQueryResponse is one page of orders plus the total number of
// orders matching the filter.
type ListOrdersQueryResponse struct {
	Data  []OrderView
	Total int64
}
