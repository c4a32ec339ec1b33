package entity

import (
	"gorm.io/gorm"
)

// OrderEvent is an append-only history entry. Rows are written in the same
// transaction as the status change they record and are never updated.
type OrderEvent struct {
	gorm.Model
	OrderID      uint   `json:"orderId"`
	FromStatusID uint   `json:"fromStatusId"`
	ToStatusID   uint   `json:"toStatusId"`
	ActorID      *uint  `json:"actorId,omitempty"` // nil = system
	Note         string `json:"note,omitempty"`
}
