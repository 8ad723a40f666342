package order

import (
	"fmt"
	"slices"

	"ordersync/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Values are the wire literals
// carried by status events and stored by both services.
type Status string

const (
	Created            Status = "CREATED"
	Accepted           Status = "ACCEPTED"
	Rejected           Status = "REJECTED"
	ShippingInProgress Status = "SHIPPING_IN_PROGRESS"
	Shipped            Status = "SHIPPED"
)

// UnknownRank is the rank of a status value missing from the rank table.
// Any known status outranks it.
const UnknownRank = -1

// allowedTransitions returns the state machine. A fresh map is built on every
// call so no caller can mutate the table.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Created:            {Accepted, Rejected},
		Accepted:           {ShippingInProgress},
		ShippingInProgress: {Shipped},
		Rejected:           {},
		Shipped:            {},
	}
}

// Statuses lists every known status in rank order.
func Statuses() []Status {
	return []Status{Created, Accepted, ShippingInProgress, Shipped, Rejected}
}

// ParseStatus converts a wire literal into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate rejects values that are not one of the five status literals.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	next, ok := allowedTransitions()[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether next is in the allowed set of s.
// Staying in the same status is not a transition.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(allowedTransitions()[s], next)
}

// TransitionTo returns next, or an InvalidTransitionError naming both states.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return "", errs.NewInvalidTransitionError(s, next)
	}
	return next, nil
}

// Rank is the position of s in the total order used to merge out-of-order
// notifications: CREATED < ACCEPTED < SHIPPING_IN_PROGRESS < SHIPPED < REJECTED.
// REJECTED is maximal so it wins once observed. Unrecognized values rank UnknownRank.
func (s Status) Rank() int {
	switch s {
	case Created:
		return 0
	case Accepted:
		return 1
	case ShippingInProgress:
		return 2
	case Shipped:
		return 3
	case Rejected:
		return 4
	default:
		return UnknownRank
	}
}
