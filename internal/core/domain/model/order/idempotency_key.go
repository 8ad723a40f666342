package order

import (
	"errors"
	"strings"

	"ordersync/internal/pkg/errs"
)

// IdempotencyKey deduplicates create requests. The triple is unique across
// all orders; the first order stored under a key wins.
type IdempotencyKey struct {
	sellerID      string
	clientOrderID string
	customerID    string
}

// NewIdempotencyKey validates that every part of the key is present.
func NewIdempotencyKey(sellerID, clientOrderID, customerID string) (IdempotencyKey, error) {
	var missing []error
	if strings.TrimSpace(sellerID) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("sellerId"))
	}
	if strings.TrimSpace(clientOrderID) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("clientOrderId"))
	}
	if strings.TrimSpace(customerID) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("customerId"))
	}
	if err := errors.Join(missing...); err != nil {
		return IdempotencyKey{}, err
	}

	return IdempotencyKey{
		sellerID:      sellerID,
		clientOrderID: clientOrderID,
		customerID:    customerID,
	}, nil
}

func (k IdempotencyKey) SellerID() string {
	return k.sellerID
}

func (k IdempotencyKey) ClientOrderID() string {
	return k.clientOrderID
}

func (k IdempotencyKey) CustomerID() string {
	return k.customerID
}

// IsZero reports whether k was not built by NewIdempotencyKey.
func (k IdempotencyKey) IsZero() bool {
	return k == IdempotencyKey{}
}
