package services

import (
	"github.com/IT2357/Hotel-Management-sub000/entity"
)

// RefundPercent returns the refund tier for an order cancelled while in the
// given status. The second return is false when the order is not cancellable
// from that status at all.
//
// Before the kitchen commits ingredients the guest gets everything back;
// once preparation has started only half is returned.
func RefundPercent(statusName string) (int, bool) {
	switch statusName {
	case entity.StatusPending, entity.StatusConfirmed:
		return 100, true
	case entity.StatusPreparing:
		return 50, true
	default:
		return 0, false
	}
}

// RefundAmount computes the refunded minor units, rounding half up so the
// guest never loses a satang to truncation.
func RefundAmount(total int64, percent int) int64 {
	if percent <= 0 {
		return 0
	}
	if percent >= 100 {
		return total
	}
	return (total*int64(percent) + 50) / 100
}
