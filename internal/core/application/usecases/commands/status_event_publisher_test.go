package commands_test

import (
	"errors"
	"testing"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatusEventPublisher_Emit(t *testing.T) {
	t.Run("should publish a uniquely identified event", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		channel := new(MockStatusEventChannel)
		channel.On("Publish", ctx, mock.AnythingOfType("order.StatusChangedEvent")).Return(nil).Twice()

		p := commands.NewStatusEventPublisher(channel, testClock)
		require.NoError(t, p.Emit(ctx, orderID, order.Shipped))
		require.NoError(t, p.Emit(ctx, orderID, order.Shipped))

		require.Len(t, channel.Calls, 2)
		first := channel.Calls[0].Arguments.Get(1).(order.StatusChangedEvent)
		second := channel.Calls[1].Arguments.Get(1).(order.StatusChangedEvent)

		assert.True(t, orderID.IsEqual(first.OrderID()))
		assert.Equal(t, order.Shipped, first.Status())
		assert.Equal(t, testNow, first.OccurredAt())
		assert.False(t, first.EventID().IsEqual(second.EventID()))
		channel.AssertExpectations(t)
	})

	t.Run("should report a rejected send as an internal fault", func(t *testing.T) {
		ctx := t.Context()
		channel := new(MockStatusEventChannel)
		channel.On("Publish", ctx, mock.Anything).Return(errors.New("stan: connection closed")).Once()

		p := commands.NewStatusEventPublisher(channel, testClock)
		err := p.Emit(ctx, kernel.NewUUID(), order.Accepted)

		require.ErrorIs(t, err, errs.ErrInternalFault)
		assert.Equal(t, "something went wrong", err.Error())
	})
}
