package entity

import (
	"gorm.io/gorm"
)

// Menu is the trimmed catalog row this service needs for pricing. Orders
// snapshot the price; modify() re-prices from the current row.
type Menu struct {
	gorm.Model
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Available bool   `json:"available"`
}
