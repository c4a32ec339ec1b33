package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Qty       int   `json:"qty"`
	UnitPrice int64 `json:"unitPrice"` // snapshot of catalog price at order time
	Total     int64 `json:"total"`

	OrderID uint `json:"orderId"`
	MenuID  uint `json:"menuId"`
}
