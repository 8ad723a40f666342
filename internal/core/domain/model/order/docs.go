// Package order provides the Order aggregate and its status state machine.
//
// The package includes:
//   - Order: the aggregate root owned by the order service
//   - Status: the lifecycle state machine and the rank used by consumers to
//     order status values that arrive out of order
//   - IdempotencyKey: the (seller, client order id, customer) triple that
//     deduplicates create requests
//   - StatusChangedEvent: the immutable notification emitted per transition
//
// Status workflow:
//
//	CREATED ──┬──> ACCEPTED ──> SHIPPING_IN_PROGRESS ──> SHIPPED
//	          │
//	          └──> REJECTED
//
// REJECTED and SHIPPED are terminal.
package order
