package commands

import (
	"bytes"
	"errors"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/pkg/errs"
	"ordersync/internal/pkg/guard"
)

// MaxInvoiceSize is the largest accepted invoice PDF in bytes.
const MaxInvoiceSize = 10 << 20

var (
	ErrUploadInvoiceCommandIsNotConstructed = errors.New(
		"UploadInvoiceCommand must be created via NewUploadInvoiceCommand constructor",
	)
	ErrFileIsNotPDF = errors.New("file is not a PDF document")
)

var pdfMagic = []byte("%PDF-")

// UploadInvoiceCommand attaches a PDF invoice to an order.
type UploadInvoiceCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	content []byte

	guard guard.ConstructorGuard
}

// NewUploadInvoiceCommand accepts non-empty PDF content up to MaxInvoiceSize.
func NewUploadInvoiceCommand(orderID kernel.UUID, content []byte) (UploadInvoiceCommand, error) {
	cmd := UploadInvoiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setContent(content),
	); err != nil {
		return UploadInvoiceCommand{}, err
	}

	return cmd, nil
}

func (c UploadInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrUploadInvoiceCommandIsNotConstructed)
}

func (c UploadInvoiceCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UploadInvoiceCommand) Content() []byte {
	return c.content
}

func (c *UploadInvoiceCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UploadInvoiceCommand) setContent(content []byte) error {
	switch {
	case len(content) == 0:
		return errs.NewValueIsRequiredError("file")
	case len(content) > MaxInvoiceSize:
		return errs.NewValueIsOutOfRangeError("file size", len(content), 1, MaxInvoiceSize)
	case !bytes.HasPrefix(content, pdfMagic):
		return errs.NewValueIsInvalidErrorWithCause("file", ErrFileIsNotPDF)
	}

	c.content = content
	return nil
}
