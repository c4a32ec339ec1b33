package services

import (
	"testing"

	"github.com/IT2357/Hotel-Management-sub000/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	orders, _, _, db := newTestServices(t)

	out := placeOrder(t, orders, 1, entity.ChannelDelivery,
		OrderItemIn{MenuID: 1, Qty: 2}, OrderItemIn{MenuID: 2, Qty: 1})

	var o entity.Order
	require.NoError(t, db.First(&o, out.ID).Error)

	wantSubtotal := int64(2*menuSoupPrice + menuNoodlePrice)
	assert.Equal(t, wantSubtotal, o.Subtotal)
	assert.Equal(t, (wantSubtotal*10+50)/100, o.Tax)
	assert.Equal(t, int64(2000), o.DeliveryFee) // delivery channel pays the fee
	assert.Equal(t, o.Subtotal-o.Discount+o.Tax+o.DeliveryFee, o.Total)
	assert.Equal(t, entity.PaymentUnpaid, o.PaymentStatus)
	assert.Equal(t, orders.Status.Pending, o.OrderStatusID)
	assert.NotEmpty(t, o.PaymentRef)
}

func TestCreateOrderNoDeliveryFeeForDineIn(t *testing.T) {
	orders, _, _, db := newTestServices(t)

	out := placeOrder(t, orders, 1, entity.ChannelDineIn, OrderItemIn{MenuID: 3, Qty: 1})

	var o entity.Order
	require.NoError(t, db.First(&o, out.ID).Error)
	assert.Zero(t, o.DeliveryFee)
	assert.Equal(t, o.Subtotal-o.Discount+o.Tax, o.Total)
}

func TestConfirmSpawnsPrepTask(t *testing.T) {
	orders, _, n, db := newTestServices(t)
	out := placeOrder(t, orders, 1, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 2})

	o, err := orders.Confirm(out.ID, out.PaymentRef, "txn-1", out.Total)
	require.NoError(t, err)
	assert.Equal(t, orders.Status.Confirmed, o.OrderStatusID)
	assert.Equal(t, entity.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, "txn-1", o.TransactionRef)

	var tasks []entity.KitchenTask
	require.NoError(t, db.Where("order_id = ?", out.ID).Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, entity.TaskPrep, tasks[0].Type)
	assert.Equal(t, entity.TaskQueued, tasks[0].Status)
	assert.Equal(t, entity.PriorityNormal, tasks[0].Priority)
	assert.False(t, tasks[0].RoomService)
	assert.InDelta(t, EstimateMinutes(entity.TaskPrep, 2, false), tasks[0].EstimatedMinutes, 1e-9)

	assert.True(t, n.seen("guest:order.confirmed"))
}

func TestConfirmRoomServiceSpawnsUrgentTask(t *testing.T) {
	orders, _, _, db := newTestServices(t)
	out := placeOrder(t, orders, 1, entity.ChannelRoomService, OrderItemIn{MenuID: 1, Qty: 2})

	_, err := orders.Confirm(out.ID, out.PaymentRef, "txn-1", out.Total)
	require.NoError(t, err)

	var task entity.KitchenTask
	require.NoError(t, db.Where("order_id = ?", out.ID).First(&task).Error)
	assert.Equal(t, entity.PriorityUrgent, task.Priority)
	assert.True(t, task.RoomService)

	plain := EstimateMinutes(entity.TaskPrep, 2, false)
	assert.InDelta(t, plain*0.8, task.EstimatedMinutes, 1e-9)
}

func TestConfirmFailures(t *testing.T) {
	orders, _, _, _ := newTestServices(t)
	out := placeOrder(t, orders, 1, entity.ChannelDineIn, OrderItemIn{MenuID: 2, Qty: 1})

	_, err := orders.Confirm(99999, "ref", "txn", 100)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = orders.Confirm(out.ID, out.PaymentRef, "txn", out.Total+1)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = orders.Confirm(out.ID, out.PaymentRef, "txn", out.Total)
	require.NoError(t, err)

	_, err = orders.Confirm(out.ID, out.PaymentRef, "txn", out.Total)
	assert.ErrorIs(t, err, ErrConflict)
}

func confirmAndAdvance(t *testing.T, orders *OrderService, out *CreateOrderRes, upTo string) {
	t.Helper()
	_, err := orders.Confirm(out.ID, out.PaymentRef, "txn-1", out.Total)
	require.NoError(t, err)
	for _, ks := range []string{entity.KitchenPreparing, entity.KitchenReady, entity.KitchenDelivered} {
		_, err := orders.AdvanceKitchenStatus(out.ID, ks, 42)
		require.NoError(t, err)
		if ks == upTo {
			return
		}
	}
}

func TestKitchenStatusFlow(t *testing.T) {
	orders, _, _, db := newTestServices(t)
	out := placeOrder(t, orders, 1, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	// cannot skip ahead of the table
	_, err := orders.Confirm(out.ID, out.PaymentRef, "txn-1", out.Total)
	require.NoError(t, err)
	_, err = orders.AdvanceKitchenStatus(out.ID, entity.KitchenReady, 42)
	assert.ErrorIs(t, err, ErrConflict)

	o, err := orders.AdvanceKitchenStatus(out.ID, entity.KitchenPreparing, 42)
	require.NoError(t, err)
	assert.Equal(t, orders.Status.Preparing, o.OrderStatusID)

	o, err = orders.AdvanceKitchenStatus(out.ID, entity.KitchenReady, 42)
	require.NoError(t, err)
	assert.Equal(t, orders.Status.Ready, o.OrderStatusID)

	// reaching ready spawns the delivery task
	var delivery entity.KitchenTask
	require.NoError(t, db.Where("order_id = ? AND type = ?", out.ID, entity.TaskDelivery).First(&delivery).Error)
	assert.Equal(t, entity.TaskQueued, delivery.Status)

	o, err = orders.AdvanceKitchenStatus(out.ID, entity.KitchenDelivered, 42)
	require.NoError(t, err)
	assert.Equal(t, orders.Status.Delivered, o.OrderStatusID)

	// delivery task closed with the order
	require.NoError(t, db.First(&delivery, delivery.ID).Error)
	assert.Equal(t, entity.TaskCompleted, delivery.Status)
	assert.NotNil(t, delivery.CompletedAt)

	// unknown kitchen status value
	_, err = orders.AdvanceKitchenStatus(out.ID, "airborne", 42)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestKitchenStatusHistoryRecorded(t *testing.T) {
	orders, _, _, db := newTestServices(t)
	out := placeOrder(t, orders, 1, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})
	confirmAndAdvance(t, orders, out, entity.KitchenDelivered)

	var events []entity.OrderEvent
	require.NoError(t, db.Where("order_id = ?", out.ID).Order("id ASC").Find(&events).Error)
	// placed, confirmed, preparing, ready, delivered
	require.Len(t, events, 5)
	assert.Equal(t, orders.Status.Ready, events[3].ToStatusID)
	assert.Equal(t, orders.Status.Delivered, events[4].ToStatusID)
}

func TestModifyRecomputesFromCatalog(t *testing.T) {
	orders, _, _, db := newTestServices(t)
	out := placeOrder(t, orders, 7, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	o, err := orders.Modify(out.ID, []OrderItemIn{{MenuID: 2, Qty: 3}}, 7)
	require.NoError(t, err)

	wantSubtotal := int64(3 * menuNoodlePrice)
	assert.Equal(t, wantSubtotal, o.Subtotal)
	assert.Equal(t, o.Subtotal-o.Discount+o.Tax+o.DeliveryFee, o.Total)
	assert.Equal(t, orders.Status.Pending, o.OrderStatusID) // back to pending

	var items []entity.OrderItem
	require.NoError(t, db.Where("order_id = ?", out.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, int64(menuNoodlePrice), items[0].UnitPrice) // catalog price, not client price

	var events []entity.OrderEvent
	require.NoError(t, db.Where("order_id = ?", out.ID).Order("id ASC").Find(&events).Error)
	require.Len(t, events, 3) // placed, modified, recomputed
	assert.Equal(t, orders.Status.Modified, events[1].ToStatusID)
	assert.Equal(t, orders.Status.Pending, events[2].ToStatusID)
}

func TestModifyGuards(t *testing.T) {
	orders, _, _, _ := newTestServices(t)
	out := placeOrder(t, orders, 7, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	_, err := orders.Modify(out.ID, []OrderItemIn{{MenuID: 2, Qty: 1}}, 8)
	assert.ErrorIs(t, err, ErrForbidden)

	confirmAndAdvance(t, orders, out, entity.KitchenPreparing)
	_, err = orders.Modify(out.ID, []OrderItemIn{{MenuID: 2, Qty: 1}}, 7)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCancelWhilePreparingRefundsHalf(t *testing.T) {
	orders, _, _, db := newTestServices(t)

	// order worth exactly 1100: subtotal 1000, tax 100, no delivery fee
	menu := entity.Menu{Name: "Spring Rolls", Price: 500, Available: true}
	require.NoError(t, db.Create(&menu).Error)
	out := placeOrder(t, orders, 7, entity.ChannelDineIn, OrderItemIn{MenuID: menu.ID, Qty: 2})
	require.Equal(t, int64(1100), out.Total)

	confirmAndAdvance(t, orders, out, entity.KitchenPreparing)

	o, err := orders.Cancel(out.ID, "changed my mind", 7)
	require.NoError(t, err)
	assert.Equal(t, orders.Status.Cancelled, o.OrderStatusID)
	assert.Equal(t, int64(550), o.RefundAmount)
	assert.Equal(t, 50, o.RefundPercent)
	assert.Equal(t, entity.StatusPreparing, o.RefundBasis)
	assert.NotNil(t, o.RefundComputedAt)

	// every open task for the order is cancelled with it
	var tasks []entity.KitchenTask
	require.NoError(t, db.Where("order_id = ?", out.ID).Find(&tasks).Error)
	require.NotEmpty(t, tasks)
	for _, task := range tasks {
		assert.Equal(t, entity.TaskCancelled, task.Status)
	}
}

func TestCancelPendingFullRefund(t *testing.T) {
	orders, _, _, _ := newTestServices(t)
	out := placeOrder(t, orders, 7, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	o, err := orders.Cancel(out.ID, "duplicate order", 7)
	require.NoError(t, err)
	assert.Equal(t, 100, o.RefundPercent)
	assert.Equal(t, o.Total, o.RefundAmount)
	assert.Equal(t, entity.StatusPending, o.RefundBasis)
}

func TestCancelGuards(t *testing.T) {
	orders, _, _, _ := newTestServices(t)
	out := placeOrder(t, orders, 7, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	_, err := orders.Cancel(out.ID, "not mine", 8)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = orders.Cancel(out.ID, "mine", 7)
	require.NoError(t, err)

	// refund record is immutable; a second cancel is rejected, not recomputed
	_, err = orders.Cancel(out.ID, "again", 7)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCancelAfterDeliveryRejected(t *testing.T) {
	orders, _, _, _ := newTestServices(t)
	out := placeOrder(t, orders, 7, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})
	confirmAndAdvance(t, orders, out, entity.KitchenDelivered)

	_, err := orders.Cancel(out.ID, "too late", 7)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAttachReview(t *testing.T) {
	orders, _, _, _ := newTestServices(t)
	out := placeOrder(t, orders, 7, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	// out-of-range rating fails before anything else is looked at
	_, err := orders.AttachReview(out.ID, 6, "great", 7)
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = orders.AttachReview(out.ID, 0, "meh", 7)
	assert.ErrorIs(t, err, ErrInvalidRating)

	// not delivered yet
	_, err = orders.AttachReview(out.ID, 5, "great", 7)
	assert.ErrorIs(t, err, ErrInvalidState)

	confirmAndAdvance(t, orders, out, entity.KitchenDelivered)

	_, err = orders.AttachReview(out.ID, 5, "great", 8)
	assert.ErrorIs(t, err, ErrForbidden)

	o, err := orders.AttachReview(out.ID, 4, "tasty but slow", 7)
	require.NoError(t, err)
	require.NotNil(t, o.ReviewRating)
	assert.Equal(t, 4, *o.ReviewRating)
	assert.NotNil(t, o.ReviewedAt)

	_, err = orders.AttachReview(out.ID, 5, "changed my mind", 7)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}
