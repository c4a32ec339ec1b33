package entity

import (
	"time"

	"gorm.io/gorm"
)

// Order channels
const (
	ChannelDineIn      = "dine_in"
	ChannelTakeaway    = "takeaway"
	ChannelDelivery    = "delivery"
	ChannelRoomService = "room_service"
)

// Payment statuses
const (
	PaymentUnpaid    = "unpaid"
	PaymentPaid      = "paid"
	PaymentFailed    = "failed"
	PaymentCancelled = "cancelled"
)

// Kitchen statuses reported by staff while the order moves through the kitchen
const (
	KitchenQueued    = "queued"
	KitchenPreparing = "preparing"
	KitchenReady     = "ready"
	KitchenDelivered = "delivered"
)

type Order struct {
	gorm.Model
	// money in minor units (satang)
	Subtotal    int64  `json:"subtotal"`
	Tax         int64  `json:"tax"`
	Discount    int64  `json:"discount"`
	DeliveryFee int64  `json:"deliveryFee"`
	Total       int64  `json:"total"`
	Currency    string `json:"currency"`

	Channel      string `json:"channel"`
	RoomNumber   string `json:"roomNumber,omitempty"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address,omitempty"`
	Notes        string `json:"notes,omitempty"`

	UserID uint `json:"userId"`
	User   User `json:"-"`

	PaymentStatus  string `json:"paymentStatus"`
	PaymentRef     string `json:"paymentRef"`
	TransactionRef string `json:"transactionRef,omitempty"`

	KitchenStatus string `json:"kitchenStatus"`

	OrderStatusID uint        `json:"orderStatusId"`
	OrderStatus   OrderStatus `json:"orderStatus"`

	// cancellation / refund record, immutable once written
	CancelReason     string     `json:"cancelReason,omitempty"`
	CancelledByID    *uint      `json:"cancelledById,omitempty"`
	RefundAmount     int64      `json:"refundAmount"`
	RefundPercent    int        `json:"refundPercent"`
	RefundBasis      string     `json:"refundBasis,omitempty"`
	RefundComputedAt *time.Time `json:"refundComputedAt,omitempty"`

	// review, attachable once after delivery
	ReviewRating  *int       `json:"reviewRating,omitempty"`
	ReviewComment string     `json:"reviewComment,omitempty"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	ReviewFlagged bool       `json:"reviewFlagged"`

	OrderItems []OrderItem   `json:"-"`
	Events     []OrderEvent  `json:"-"`
	Tasks      []KitchenTask `gorm:"foreignKey:OrderID" json:"-"`
}
