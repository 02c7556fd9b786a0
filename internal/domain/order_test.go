package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []OrderItem {
	return []OrderItem{
		{ProductID: "p1", Name: "Lavender Candle", UnitPrice: 100, Quantity: 2},
	}
}

func testShipping() ShippingAddress {
	return ShippingAddress{Name: "Asha", Phone: "555", Line1: "1 Main St", City: "Pune", State: "MH", PostalCode: "411001", Country: "IN"}
}

func TestNewOrder(t *testing.T) {
	order, err := NewOrder("o1", "c1", testItems(), 200, "INR", testShipping())
	require.NoError(t, err)

	assert.Equal(t, OrderStatusConfirmed, order.Status)
	assert.Equal(t, int64(200), order.TotalAmount)
	require.Len(t, order.History, 1)
	assert.Equal(t, OrderStatusConfirmed, order.History[0].Status)
	assert.Equal(t, "Order placed", order.History[0].Note)
	assert.Contains(t, order.OrderNumber, "SG-")
}

func TestNewOrder_Invalid(t *testing.T) {
	_, err := NewOrder("", "c1", testItems(), 200, "INR", testShipping())
	assert.Error(t, err)

	_, err = NewOrder("o1", "c1", nil, 200, "INR", testShipping())
	assert.Error(t, err)

	_, err = NewOrder("o1", "c1", testItems(), 0, "INR", testShipping())
	assert.Error(t, err)
}

func TestOrder_SetStatus_AppendsHistory(t *testing.T) {
	order, err := NewOrder("o1", "c1", testItems(), 200, "INR", testShipping())
	require.NoError(t, err)

	require.NoError(t, order.SetStatus(OrderStatusProcessing, "packing"))
	require.NoError(t, order.SetStatus(OrderStatusShipped, "handed to courier"))

	require.Len(t, order.History, 3)
	assert.Equal(t, OrderStatusShipped, order.Status)
	assert.Equal(t, "handed to courier", order.History[2].Note)
}

func TestOrder_SetStatus_StampsDeliveredOnce(t *testing.T) {
	order, err := NewOrder("o1", "c1", testItems(), 200, "INR", testShipping())
	require.NoError(t, err)

	require.NoError(t, order.SetStatus(OrderStatusDelivered, ""))
	require.NotNil(t, order.DeliveredAt)
	first := *order.DeliveredAt

	require.NoError(t, order.SetStatus(OrderStatusShipped, "wrong scan"))
	require.NoError(t, order.SetStatus(OrderStatusDelivered, ""))
	assert.Equal(t, first, *order.DeliveredAt)
}

func TestOrder_SetStatus_Unknown(t *testing.T) {
	order, err := NewOrder("o1", "c1", testItems(), 200, "INR", testShipping())
	require.NoError(t, err)

	assert.Error(t, order.SetStatus(OrderStatus("LOST"), ""))
}

func TestOrder_Cancel(t *testing.T) {
	order, err := NewOrder("o1", "c1", testItems(), 200, "INR", testShipping())
	require.NoError(t, err)

	require.NoError(t, order.Cancel("changed my mind"))
	assert.Equal(t, OrderStatusCancelled, order.Status)
	require.NotNil(t, order.CancelledAt)

	assert.ErrorIs(t, order.Cancel("again"), ErrCancelNotAllowed)
}

func TestOrder_Cancel_CompletedRejected(t *testing.T) {
	order, err := NewOrder("o1", "c1", testItems(), 200, "INR", testShipping())
	require.NoError(t, err)
	require.NoError(t, order.SetStatus(OrderStatusCompleted, ""))

	assert.ErrorIs(t, order.Cancel("too late"), ErrCancelNotAllowed)
}

func TestOrder_RequestReturn_WithinWindow(t *testing.T) {
	order, err := NewOrder("o1", "c1", testItems(), 200, "INR", testShipping())
	require.NoError(t, err)
	require.NoError(t, order.SetStatus(OrderStatusCompleted, ""))

	err = order.RequestReturn("damaged", time.Now().Add(23*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, OrderStatusReturn, order.Status)
}

func TestOrder_RequestReturn_WindowExpired(t *testing.T) {
	order, err := NewOrder("o1", "c1", testItems(), 200, "INR", testShipping())
	require.NoError(t, err)
	require.NoError(t, order.SetStatus(OrderStatusCompleted, ""))

	err = order.RequestReturn("damaged", time.Now().Add(25*time.Hour))
	assert.ErrorIs(t, err, ErrReturnWindowOver)
	assert.Equal(t, OrderStatusCompleted, order.Status)
}

func TestOrder_RequestReturn_NotCompleted(t *testing.T) {
	order, err := NewOrder("o1", "c1", testItems(), 200, "INR", testShipping())
	require.NoError(t, err)

	err = order.RequestReturn("damaged", time.Now())
	assert.ErrorIs(t, err, ErrReturnNotAllowed)
}

func TestOrder_RequestReturn_WindowFromLatestCompletion(t *testing.T) {
	order, err := NewOrder("o1", "c1", testItems(), 200, "INR", testShipping())
	require.NoError(t, err)

	// An earlier completion followed by a correction and re-completion: the
	// window counts from the latest COMPLETED entry.
	require.NoError(t, order.SetStatus(OrderStatusCompleted, ""))
	order.History[len(order.History)-1].CreatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, order.SetStatus(OrderStatusRefunded, "dispute"))
	require.NoError(t, order.SetStatus(OrderStatusCompleted, "resolved"))

	assert.NoError(t, order.RequestReturn("still faulty", time.Now().Add(time.Hour)))
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderStatusPending))
	assert.True(t, ValidOrderStatus(OrderStatusReturn))
	assert.False(t, ValidOrderStatus(OrderStatus("pending")))
	assert.False(t, ValidOrderStatus(OrderStatus("")))
}
