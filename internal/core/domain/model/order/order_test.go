package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromFloat(amount)
	require.NoError(t, err)
	return m
}

func mustItem(t *testing.T, name string, quantity int, price float64) order.Item {
	t.Helper()
	item, err := order.NewItem(name, quantity, mustMoney(t, price))
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	items := []order.Item{
		mustItem(t, "Box", 2, 10.00),
		mustItem(t, "Fee", 1, 5.50),
	}
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"1 Main St",
		nil,
		nil,
		items,
		mustMoney(t, 25.50),
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order without driver", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Driver())
		assert.Nil(t, o.ActualDeliveryTime())
		assert.Len(t, o.Items(), 2)
		assert.Equal(t, int64(2550), o.Total().Cents())
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), "1 Main St",
			nil, nil, nil, mustMoney(t, 0), time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects total that does not match items", func(t *testing.T) {
		items := []order.Item{mustItem(t, "Box", 1, 10.00)}

		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), "1 Main St",
			nil, nil, items, mustMoney(t, 11.00), time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects blank delivery address", func(t *testing.T) {
		items := []order.Item{mustItem(t, "Box", 1, 10.00)}

		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), "   ",
			nil, nil, items, mustMoney(t, 10.00), time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects missing customer", func(t *testing.T) {
		items := []order.Item{mustItem(t, "Box", 1, 10.00)}

		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.UUID{}, "1 Main St",
			nil, nil, items, mustMoney(t, 10.00), time.Now(),
		)

		require.Error(t, err)
	})
}

func TestNewItem(t *testing.T) {
	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := order.NewItem("Box", 0, mustMoney(t, 10.00))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := order.NewItem("  ", 1, mustMoney(t, 10.00))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("computes subtotal", func(t *testing.T) {
		item := mustItem(t, "Box", 3, 10.00)

		assert.Equal(t, int64(3000), item.Subtotal().Cents())
	})
}

func TestOrder_Assign(t *testing.T) {
	t.Run("pending order accepts a driver", func(t *testing.T) {
		o := newTestOrder(t)
		driverID := kernel.NewUUID()

		err := o.Assign(driverID, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Driver())
		assert.True(t, o.Driver().IsEqual(driverID))
		assert.True(t, o.IsAssignedTo(driverID))
	})

	t.Run("assigned order rejects reassignment", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))

		err := o.Assign(kernel.NewUUID(), time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("rejects invalid driver id", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Assign(kernel.UUID{}, time.Now())

		require.Error(t, err)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("delivered sets actual delivery time", func(t *testing.T) {
		o := newTestOrder(t)
		driverID := kernel.NewUUID()
		now := time.Now()
		require.NoError(t, o.Assign(driverID, now))
		require.NoError(t, o.TransitionTo(order.PickedUp, now))
		require.NoError(t, o.TransitionTo(order.InTransit, now))

		deliveredAt := now.Add(time.Hour)
		err := o.TransitionTo(order.Delivered, deliveredAt)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.ActualDeliveryTime())
		assert.Equal(t, deliveredAt, *o.ActualDeliveryTime())
		// delivered keeps the driver binding for the audit trail
		assert.NotNil(t, o.Driver())
	})

	t.Run("cancelled clears the driver binding", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))

		err := o.TransitionTo(order.Cancelled, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.Driver())
		assert.Nil(t, o.ActualDeliveryTime())
	})

	t.Run("delivered order rejects any transition", func(t *testing.T) {
		o := newTestOrder(t)
		now := time.Now()
		require.NoError(t, o.Assign(kernel.NewUUID(), now))
		require.NoError(t, o.TransitionTo(order.PickedUp, now))
		require.NoError(t, o.TransitionTo(order.InTransit, now))
		require.NoError(t, o.TransitionTo(order.Delivered, now))

		err := o.TransitionTo(order.Pending, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "delivered")
		assert.Contains(t, err.Error(), "pending")
	})
}

func TestOrder_DeliverWithProof(t *testing.T) {
	t.Run("delivers from picked_up", func(t *testing.T) {
		o := newTestOrder(t)
		now := time.Now()
		require.NoError(t, o.Assign(kernel.NewUUID(), now))
		require.NoError(t, o.TransitionTo(order.PickedUp, now))

		deliveredAt := now.Add(time.Hour)
		err := o.DeliverWithProof(deliveredAt)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.ActualDeliveryTime())
		assert.Equal(t, deliveredAt, *o.ActualDeliveryTime())
	})

	t.Run("delivers from in_transit", func(t *testing.T) {
		o := newTestOrder(t)
		now := time.Now()
		require.NoError(t, o.Assign(kernel.NewUUID(), now))
		require.NoError(t, o.TransitionTo(order.PickedUp, now))
		require.NoError(t, o.TransitionTo(order.InTransit, now))

		err := o.DeliverWithProof(now)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("rejects an assigned order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), time.Now()))

		err := o.DeliverWithProof(time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "assigned")
		assert.Equal(t, order.Assigned, o.Status())
	})

	t.Run("rejects a delivered order", func(t *testing.T) {
		o := newTestOrder(t)
		now := time.Now()
		require.NoError(t, o.Assign(kernel.NewUUID(), now))
		require.NoError(t, o.TransitionTo(order.PickedUp, now))
		require.NoError(t, o.DeliverWithProof(now))

		require.ErrorIs(t, o.DeliverWithProof(now), errs.ErrInvalidTransition)
	})
}

func TestOrder_UpdateDetails(t *testing.T) {
	t.Run("replaces instructions and estimate", func(t *testing.T) {
		o := newTestOrder(t)
		instructions := "ring the side bell"
		eta := time.Now().Add(2 * time.Hour)

		err := o.UpdateDetails(&instructions, &eta, time.Now())

		require.NoError(t, err)
		require.NotNil(t, o.DeliveryInstructions())
		assert.Equal(t, "ring the side bell", *o.DeliveryInstructions())
		require.NotNil(t, o.EstimatedDeliveryTime())
		assert.Equal(t, eta, *o.EstimatedDeliveryTime())
	})

	t.Run("nil clears both fields", func(t *testing.T) {
		o := newTestOrder(t)
		instructions := "leave at the door"
		eta := time.Now().Add(time.Hour)
		require.NoError(t, o.UpdateDetails(&instructions, &eta, time.Now()))

		err := o.UpdateDetails(nil, nil, time.Now())

		require.NoError(t, err)
		assert.Nil(t, o.DeliveryInstructions())
		assert.Nil(t, o.EstimatedDeliveryTime())
	})

	t.Run("works while in flight", func(t *testing.T) {
		o := newTestOrder(t)
		now := time.Now()
		require.NoError(t, o.Assign(kernel.NewUUID(), now))
		require.NoError(t, o.TransitionTo(order.PickedUp, now))
		instructions := "third floor"

		require.NoError(t, o.UpdateDetails(&instructions, nil, now))
	})

	t.Run("rejects a cancelled order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.TransitionTo(order.Cancelled, time.Now()))
		instructions := "too late"

		err := o.UpdateDetails(&instructions, nil, time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidOperation)
		assert.Nil(t, o.DeliveryInstructions())
	})
}

func TestRestoreOrder(t *testing.T) {
	items := []order.Item{mustItem(t, "Box", 1, 10.00)}
	total := mustMoney(t, 10.00)
	now := time.Now()

	t.Run("restores in transit order with driver", func(t *testing.T) {
		driverID := kernel.NewUUID()

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), &driverID,
			order.InTransit, items, total, "1 Main St",
			nil, nil, nil, now, now,
		)

		require.NoError(t, err)
		assert.Equal(t, order.InTransit, o.Status())
		assert.True(t, o.IsAssignedTo(driverID))
	})

	t.Run("rejects pending order with driver", func(t *testing.T) {
		driverID := kernel.NewUUID()

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), &driverID,
			order.Pending, items, total, "1 Main St",
			nil, nil, nil, now, now,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects assigned order without driver", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			order.Assigned, items, total, "1 Main St",
			nil, nil, nil, now, now,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects delivered order without actual delivery time", func(t *testing.T) {
		driverID := kernel.NewUUID()

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), &driverID,
			order.Delivered, items, total, "1 Main St",
			nil, nil, nil, now, now,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects pending order with actual delivery time", func(t *testing.T) {
		deliveredAt := now

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			order.Pending, items, total, "1 Main St",
			nil, nil, &deliveredAt, now, now,
		)

		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value is rejected", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("constructed order passes", func(t *testing.T) {
		require.NoError(t, newTestOrder(t).Validate())
	})
}
