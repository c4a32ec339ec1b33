package services

import (
	"testing"

	"github.com/IT2357/Hotel-Management-sub000/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "test-webhook-secret"

func signedNotification(orderRef, eventID, status string, amount int64) *PaymentNotification {
	n := &PaymentNotification{OrderRef: orderRef, EventID: eventID, Status: status, Amount: amount}
	n.Signature = SignNotification(n, testWebhookSecret)
	return n
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	orders, _, _, db := newTestServices(t)
	hook := NewWebhookService(db, orders, orders.Repo, testWebhookSecret)
	out := placeOrder(t, orders, 1, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	n := signedNotification(out.PaymentRef, "evt-1", GatewaySuccess, out.Total)
	n.Signature = "deadbeef"
	_, err := hook.Handle(n)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	// tampered field invalidates the original signature
	n = signedNotification(out.PaymentRef, "evt-1", GatewaySuccess, out.Total)
	n.Amount++
	_, err = hook.Handle(n)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	// nothing moved
	var o entity.Order
	require.NoError(t, db.First(&o, out.ID).Error)
	assert.Equal(t, entity.PaymentUnpaid, o.PaymentStatus)
	assert.Equal(t, orders.Status.Pending, o.OrderStatusID)
}

func TestWebhookSuccessConfirmsOrder(t *testing.T) {
	orders, _, _, db := newTestServices(t)
	hook := NewWebhookService(db, orders, orders.Repo, testWebhookSecret)
	out := placeOrder(t, orders, 1, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	res, err := hook.Handle(signedNotification(out.PaymentRef, "evt-1", GatewaySuccess, out.Total))
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, entity.PaymentPaid, res.Order.PaymentStatus)
	assert.Equal(t, orders.Status.Confirmed, res.Order.OrderStatusID)
	assert.Equal(t, "evt-1", res.Order.TransactionRef)

	var tasks []entity.KitchenTask
	require.NoError(t, db.Where("order_id = ?", out.ID).Find(&tasks).Error)
	assert.Len(t, tasks, 1)
}

func TestWebhookSuccessReplayIsNoOp(t *testing.T) {
	orders, _, _, db := newTestServices(t)
	hook := NewWebhookService(db, orders, orders.Repo, testWebhookSecret)
	out := placeOrder(t, orders, 1, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	n := signedNotification(out.PaymentRef, "evt-1", GatewaySuccess, out.Total)
	_, err := hook.Handle(n)
	require.NoError(t, err)

	res, err := hook.Handle(n)
	require.NoError(t, err)
	assert.False(t, res.Applied)

	// no duplicate prep task or confirmation event
	var tasks []entity.KitchenTask
	require.NoError(t, db.Where("order_id = ?", out.ID).Find(&tasks).Error)
	assert.Len(t, tasks, 1)
	var events []entity.OrderEvent
	require.NoError(t, db.Where("order_id = ?", out.ID).Find(&events).Error)
	assert.Len(t, events, 2) // placed, confirmed
}

func TestWebhookSuccessWrongAmount(t *testing.T) {
	orders, _, _, db := newTestServices(t)
	hook := NewWebhookService(db, orders, orders.Repo, testWebhookSecret)
	out := placeOrder(t, orders, 1, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	_, err := hook.Handle(signedNotification(out.PaymentRef, "evt-1", GatewaySuccess, out.Total-1))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	var o entity.Order
	require.NoError(t, db.First(&o, out.ID).Error)
	assert.Equal(t, entity.PaymentUnpaid, o.PaymentStatus)
}

func TestWebhookFailureCancelsPendingOrder(t *testing.T) {
	orders, _, _, db := newTestServices(t)
	hook := NewWebhookService(db, orders, orders.Repo, testWebhookSecret)
	out := placeOrder(t, orders, 1, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	res, err := hook.Handle(signedNotification(out.PaymentRef, "evt-1", GatewayFailed, out.Total))
	require.NoError(t, err)
	assert.True(t, res.Applied)

	var o entity.Order
	require.NoError(t, db.First(&o, out.ID).Error)
	assert.Equal(t, entity.PaymentFailed, o.PaymentStatus)
	assert.Equal(t, orders.Status.Cancelled, o.OrderStatusID)
	// nothing was captured, so the refund record is zero
	assert.Zero(t, o.RefundAmount)
	assert.Zero(t, o.RefundPercent)
	assert.NotNil(t, o.RefundComputedAt)
}

func TestWebhookFailureReplayIsNoOp(t *testing.T) {
	orders, _, _, db := newTestServices(t)
	hook := NewWebhookService(db, orders, orders.Repo, testWebhookSecret)
	out := placeOrder(t, orders, 1, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	n := signedNotification(out.PaymentRef, "evt-1", GatewayFailed, out.Total)
	_, err := hook.Handle(n)
	require.NoError(t, err)

	res, err := hook.Handle(n)
	require.NoError(t, err)
	assert.False(t, res.Applied)

	var events []entity.OrderEvent
	require.NoError(t, db.Where("order_id = ?", out.ID).Find(&events).Error)
	assert.Len(t, events, 2) // placed, cancelled
}

func TestWebhookCancelledOutcome(t *testing.T) {
	orders, _, _, db := newTestServices(t)
	hook := NewWebhookService(db, orders, orders.Repo, testWebhookSecret)
	out := placeOrder(t, orders, 1, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	res, err := hook.Handle(signedNotification(out.PaymentRef, "evt-1", GatewayCancelled, out.Total))
	require.NoError(t, err)
	assert.True(t, res.Applied)

	var o entity.Order
	require.NoError(t, db.First(&o, out.ID).Error)
	assert.Equal(t, entity.PaymentCancelled, o.PaymentStatus)
	assert.Equal(t, orders.Status.Cancelled, o.OrderStatusID)
}

func TestWebhookUnknownOrderRef(t *testing.T) {
	orders, _, _, db := newTestServices(t)
	hook := NewWebhookService(db, orders, orders.Repo, testWebhookSecret)

	_, err := hook.Handle(signedNotification("pay-999999", "evt-1", GatewaySuccess, 100))
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestWebhookUnknownOutcome(t *testing.T) {
	orders, _, _, db := newTestServices(t)
	hook := NewWebhookService(db, orders, orders.Repo, testWebhookSecret)
	out := placeOrder(t, orders, 1, entity.ChannelDineIn, OrderItemIn{MenuID: 1, Qty: 1})

	_, err := hook.Handle(signedNotification(out.PaymentRef, "evt-1", "refunded", out.Total))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
