package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IT2357/Hotel-Management-sub000/entity"

	"gorm.io/gorm"
)

// The order lifecycle:
//
//	Pending → Confirmed → Preparing → Ready → Delivered
//
// Cancelled is reachable from Pending, Confirmed and Preparing only.
// Modified is a transient side-state from Pending/Confirmed that returns to
// Pending within the same transaction. Every transition is one conditional
// UPDATE keyed on the expected current status; a failed precondition is
// reported as ErrConflict and never mutates state. The history entry is
// appended in the same transaction as the status write.

// Confirm marks an order paid and moves Pending → Confirmed. Called by the
// payment webhook or by a manager after manual verification. Spawns the prep
// task; room-service orders get urgent priority.
func (s *OrderService) Confirm(orderID uint, paymentRef, transactionRef string, amount int64) (*entity.Order, error) {
	o, err := s.Repo.Get(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if o.OrderStatusID != s.Status.Pending {
		return nil, ErrConflict
	}
	if amount != o.Total {
		return nil, ErrInvalidAmount
	}

	itemCount, err := s.Repo.CountItems(orderID)
	if err != nil {
		return nil, err
	}
	roomService := o.Channel == entity.ChannelRoomService

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		sets := map[string]any{
			"payment_status":  entity.PaymentPaid,
			"transaction_ref": transactionRef,
		}
		if paymentRef != "" {
			sets["payment_ref"] = paymentRef
		}
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, s.Status.Pending, s.Status.Confirmed, sets)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		ev := &entity.OrderEvent{
			OrderID:      orderID,
			FromStatusID: s.Status.Pending,
			ToStatusID:   s.Status.Confirmed,
			Note:         "payment confirmed",
		}
		if err := s.Repo.AppendEvent(tx, ev); err != nil {
			return err
		}
		_, err = s.Tasks.Enqueue(tx, orderID, entity.TaskPrep, roomService, itemCount)
		return err
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Repo.Get(orderID)
	if err != nil {
		return nil, err
	}
	notify(s.Notifier, AudienceGuest, "order.confirmed", out)
	notify(s.Notifier, AudienceStaff, "order.confirmed", out)
	return out, nil
}

// AdvanceKitchenStatus applies a staff kitchen update. The permitted table:
//
//	preparing: Confirmed → Preparing
//	ready:     Preparing → Ready      (spawns the delivery task)
//	delivered: Ready → Delivered      (closes the delivery task)
func (s *OrderService) AdvanceKitchenStatus(orderID uint, kitchenStatus string, staffID uint) (*entity.Order, error) {
	o, err := s.Repo.Get(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	var fromID, toID uint
	switch kitchenStatus {
	case entity.KitchenPreparing:
		fromID, toID = s.Status.Confirmed, s.Status.Preparing
	case entity.KitchenReady:
		fromID, toID = s.Status.Preparing, s.Status.Ready
	case entity.KitchenDelivered:
		fromID, toID = s.Status.Ready, s.Status.Delivered
	default:
		return nil, ErrInvalidStatus
	}

	itemCount, err := s.Repo.CountItems(orderID)
	if err != nil {
		return nil, err
	}
	roomService := o.Channel == entity.ChannelRoomService

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, fromID, toID,
			map[string]any{"kitchen_status": kitchenStatus})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		ev := &entity.OrderEvent{
			OrderID:      orderID,
			FromStatusID: fromID,
			ToStatusID:   toID,
			ActorID:      &staffID,
			Note:         "kitchen " + kitchenStatus,
		}
		if err := s.Repo.AppendEvent(tx, ev); err != nil {
			return err
		}
		switch toID {
		case s.Status.Ready:
			if _, err := s.Tasks.Enqueue(tx, orderID, entity.TaskDelivery, roomService, itemCount); err != nil {
				return err
			}
		case s.Status.Delivered:
			if err := s.Tasks.CompleteOpenByType(tx, orderID, entity.TaskDelivery, &staffID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Repo.Get(orderID)
	if err != nil {
		return nil, err
	}
	notify(s.Notifier, AudienceGuest, "order."+kitchenStatus, out)
	return out, nil
}

// Modify replaces the order's items and recomputes all money fields from
// the current catalog. Routes through the Modified side-state and back to
// Pending so the history shows the modification explicitly.
func (s *OrderService) Modify(orderID uint, items []OrderItemIn, actorID uint) (*entity.Order, error) {
	o, err := s.Repo.Get(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if o.UserID != actorID {
		return nil, ErrForbidden
	}
	cur := o.OrderStatusID
	if cur != s.Status.Pending && cur != s.Status.Confirmed {
		return nil, fmt.Errorf("cannot modify order in %s status: %w",
			strings.ToLower(s.StatusName(cur)), ErrInvalidState)
	}
	if len(items) == 0 {
		return nil, ErrMenuNotFound
	}

	rows, subtotal, err := s.priceItems(items)
	if err != nil {
		return nil, err
	}
	tax, discount, fee, total := s.computeTotals(subtotal, o.Channel)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, cur, s.Status.Modified, nil)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		ev := &entity.OrderEvent{
			OrderID: orderID, FromStatusID: cur, ToStatusID: s.Status.Modified,
			ActorID: &actorID, Note: "order modified by guest",
		}
		if err := s.Repo.AppendEvent(tx, ev); err != nil {
			return err
		}

		if err := s.Repo.DeleteItems(tx, orderID); err != nil {
			return err
		}
		for i := range rows {
			rows[i].OrderID = orderID
			if err := s.Repo.CreateItem(tx, &rows[i]); err != nil {
				return err
			}
		}

		affected, err = s.Repo.UpdateStatusGuard(tx, orderID, s.Status.Modified, s.Status.Pending,
			map[string]any{
				"subtotal":     subtotal,
				"tax":          tax,
				"discount":     discount,
				"delivery_fee": fee,
				"total":        total,
			})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		ev = &entity.OrderEvent{
			OrderID: orderID, FromStatusID: s.Status.Modified, ToStatusID: s.Status.Pending,
			ActorID: &actorID, Note: "totals recomputed from catalog",
		}
		return s.Repo.AppendEvent(tx, ev)
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Repo.Get(orderID)
	if err != nil {
		return nil, err
	}
	notify(s.Notifier, AudienceStaff, "order.modified", out)
	return out, nil
}

// Cancel is the guest-initiated cancellation.
func (s *OrderService) Cancel(orderID uint, reason string, actorID uint) (*entity.Order, error) {
	return s.cancel(orderID, reason, &actorID, false)
}

// CancelSystem is used by the webhook handler when payment fails before
// capture; no money changed hands so the refund record is zero.
func (s *OrderService) CancelSystem(orderID uint, reason string) (*entity.Order, error) {
	return s.cancel(orderID, reason, nil, true)
}

func (s *OrderService) cancel(orderID uint, reason string, actorID *uint, system bool) (*entity.Order, error) {
	o, err := s.Repo.Get(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !system && (actorID == nil || o.UserID != *actorID) {
		return nil, ErrForbidden
	}

	// refund tier is keyed on the status the order held when cancellation
	// was requested; a second cancel finds Cancelled here and is rejected
	basis := s.StatusName(o.OrderStatusID)
	percent, ok := RefundPercent(basis)
	if !ok {
		return nil, fmt.Errorf("cannot cancel order in %s status: %w",
			strings.ToLower(basis), ErrInvalidState)
	}
	amount := RefundAmount(o.Total, percent)
	if system && o.PaymentStatus != entity.PaymentPaid {
		// payment never captured, nothing is owed
		percent, amount = 0, 0
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		sets := map[string]any{
			"cancel_reason":      reason,
			"refund_amount":      amount,
			"refund_percent":     percent,
			"refund_basis":       basis,
			"refund_computed_at": now,
		}
		if actorID != nil {
			sets["cancelled_by_id"] = *actorID
		}
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, o.OrderStatusID, s.Status.Cancelled, sets)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		ev := &entity.OrderEvent{
			OrderID: orderID, FromStatusID: o.OrderStatusID, ToStatusID: s.Status.Cancelled,
			ActorID: actorID, Note: reason,
		}
		if err := s.Repo.AppendEvent(tx, ev); err != nil {
			return err
		}
		_, err = s.Tasks.CancelAllForOrder(tx, orderID, "order cancelled")
		return err
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Repo.Get(orderID)
	if err != nil {
		return nil, err
	}
	notify(s.Notifier, AudienceGuest, "order.cancelled", out)
	notify(s.Notifier, AudienceStaff, "order.cancelled", out)
	return out, nil
}

// AttachReview records the guest's one-time post-delivery review.
func (s *OrderService) AttachReview(orderID uint, rating int, comment string, actorID uint) (*entity.Order, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	o, err := s.Repo.Get(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if o.UserID != actorID {
		return nil, ErrForbidden
	}
	if o.OrderStatusID != s.Status.Delivered {
		return nil, fmt.Errorf("cannot review order in %s status: %w",
			strings.ToLower(s.StatusName(o.OrderStatusID)), ErrInvalidState)
	}
	if o.ReviewRating != nil {
		return nil, ErrAlreadyReviewed
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.AttachReviewGuard(tx, orderID, s.Status.Delivered, map[string]any{
			"review_rating":  rating,
			"review_comment": comment,
			"reviewed_at":    now,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		ev := &entity.OrderEvent{
			OrderID: orderID, FromStatusID: s.Status.Delivered, ToStatusID: s.Status.Delivered,
			ActorID: &actorID, Note: "review attached",
		}
		return s.Repo.AppendEvent(tx, ev)
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Repo.Get(orderID)
	if err != nil {
		return nil, err
	}
	notify(s.Notifier, AudienceStaff, "order.reviewed", out)
	return out, nil
}
