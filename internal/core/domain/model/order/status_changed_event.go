package order

import (
	"errors"
	"time"

	"ordersync/internal/core/domain/model/kernel"
)

var ErrStatusChangedEventIsNotConstructed = errors.New(
	"StatusChangedEvent must be created via NewStatusChangedEvent or RestoreStatusChangedEvent",
)

// StatusChangedEvent is emitted once per committed status transition.
// It is immutable and carries a globally unique event id.
type StatusChangedEvent struct {
	eventID    kernel.UUID
	occurredAt time.Time
	orderID    kernel.UUID
	status     Status
}

// NewStatusChangedEvent stamps a fresh event id and the given occurrence time.
func NewStatusChangedEvent(orderID kernel.UUID, status Status, occurredAt time.Time) (StatusChangedEvent, error) {
	return RestoreStatusChangedEvent(kernel.NewUUID(), orderID, status, occurredAt)
}

// RestoreStatusChangedEvent rebuilds an event received from the channel.
func RestoreStatusChangedEvent(
	eventID, orderID kernel.UUID,
	status Status,
	occurredAt time.Time,
) (StatusChangedEvent, error) {
	if err := errors.Join(eventID.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return StatusChangedEvent{}, err
	}

	return StatusChangedEvent{
		eventID:    eventID,
		occurredAt: occurredAt,
		orderID:    orderID,
		status:     status,
	}, nil
}

// Validate rejects zero-value events.
func (e StatusChangedEvent) Validate() error {
	if e.eventID.Validate() != nil {
		return ErrStatusChangedEventIsNotConstructed
	}
	return nil
}

func (e StatusChangedEvent) EventID() kernel.UUID {
	return e.eventID
}

func (e StatusChangedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

func (e StatusChangedEvent) OrderID() kernel.UUID {
	return e.orderID
}

func (e StatusChangedEvent) Status() Status {
	return e.status
}
