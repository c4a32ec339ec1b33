package entity

import (
	"gorm.io/gorm"
)

// Seeded status names, see configs.SeedLookups
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusPreparing = "Preparing"
	StatusReady     = "Ready"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
	StatusModified  = "Modified"
)

type OrderStatus struct {
	gorm.Model
	StatusName string `json:"statusName"`

	Orders []Order `json:"-"`
}
