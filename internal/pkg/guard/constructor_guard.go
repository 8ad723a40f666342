// Package guard marks values as built by their constructor so that zero values
// of commands, queries and aggregates can be rejected before use.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be created through a
// NewXxx function. The zero value is "not constructed".
//
// Example:
//
//	type UpdateOrderStatusCommand struct {
//	    orderID kernel.UUID
//	    status  order.Status
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c UpdateOrderStatusCommand) Validate() error {
//	    return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that validates successfully.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
