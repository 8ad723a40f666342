// Package wire holds the JSON shape of messages exchanged over the order status channel.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/errs"
)

// ErrMalformedEvent marks a payload that can never be processed, however often it is redelivered.
var ErrMalformedEvent = errors.New("malformed order status event")

type statusChangedMessage struct {
	EventID    string    `json:"eventId"`
	OccurredAt time.Time `json:"occurredAt"`
	OrderID    string    `json:"orderId"`
	Status     string    `json:"status"`
}

// EncodeStatusChanged renders the event as
// {"eventId":…,"occurredAt":RFC3339,"orderId":…,"status":…}.
func EncodeStatusChanged(event order.StatusChangedEvent) ([]byte, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	return json.Marshal(statusChangedMessage{
		EventID:    event.EventID().String(),
		OccurredAt: event.OccurredAt().UTC(),
		OrderID:    event.OrderID().String(),
		Status:     event.Status().String(),
	})
}

// DecodeStatusChanged parses a payload. Unknown statuses, bad ids and broken JSON
// are reported as ErrMalformedEvent.
func DecodeStatusChanged(data []byte) (order.StatusChangedEvent, error) {
	var msg statusChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return order.StatusChangedEvent{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	eventID, eventIDErr := kernel.ParseUUID("eventId", msg.EventID)
	orderID, orderIDErr := kernel.ParseUUID("orderId", msg.OrderID)
	status, statusErr := order.ParseStatus(msg.Status)

	var occurredAtErr error
	if msg.OccurredAt.IsZero() {
		occurredAtErr = errs.NewValueIsRequiredError("occurredAt")
	}

	if err := errors.Join(eventIDErr, orderIDErr, statusErr, occurredAtErr); err != nil {
		return order.StatusChangedEvent{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	event, err := order.RestoreStatusChangedEvent(eventID, orderID, status, msg.OccurredAt.UTC())
	if err != nil {
		return order.StatusChangedEvent{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	return event, nil
}
