// Package kernel provides the identifier value object shared by the order,
// projection and invoice models.
//
// Identifiers cross service boundaries by value only: an order id travels from
// the order service to the invoice service inside status events, and is parsed
// back into a UUID on arrival.
package kernel
