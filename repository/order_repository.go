package repository

import (
	"time"

	"github.com/IT2357/Hotel-Management-sub000/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) Get(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByPaymentRef(ref string) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("payment_ref = ?", ref).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GET /orders/:id for the owning guest
func (r *OrderRepository) GetForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID            uint      `json:"id"`
	Channel       string    `json:"channel"`
	Total         int64     `json:"total"`
	OrderStatusID uint      `json:"orderStatusId"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, channel, total, order_status_id, payment_status, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

// UpdateStatusGuard performs the guarded transition: the status column only
// changes when the row still holds the expected current status. RowsAffected
// is 0 when the precondition failed (lost race or wrong state). Extra column
// writes ride along in the same atomic UPDATE.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID, fromID, toID uint, sets map[string]any) (int64, error) {
	if sets == nil {
		sets = map[string]any{}
	}
	sets["order_status_id"] = toID
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND order_status_id = ?", orderID, fromID).
		Updates(sets)
	return res.RowsAffected, res.Error
}

// UpdatePaymentStatusGuard is the same guard keyed on payment_status, used by
// the webhook handler so duplicate deliveries collapse to a no-op.
func (r *OrderRepository) UpdatePaymentStatusGuard(tx *gorm.DB, orderID uint, from, to string, sets map[string]any) (int64, error) {
	if sets == nil {
		sets = map[string]any{}
	}
	sets["payment_status"] = to
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND payment_status = ?", orderID, from).
		Updates(sets)
	return res.RowsAffected, res.Error
}

// AttachReviewGuard writes the review only when the order is still in the
// expected status and has no review yet.
func (r *OrderRepository) AttachReviewGuard(tx *gorm.DB, orderID, statusID uint, sets map[string]any) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND order_status_id = ? AND review_rating IS NULL", orderID, statusID).
		Updates(sets)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) AppendEvent(tx *gorm.DB, ev *entity.OrderEvent) error {
	return tx.Create(ev).Error
}

func (r *OrderRepository) GetEvents(orderID uint) ([]entity.OrderEvent, error) {
	var evs []entity.OrderEvent
	err := r.DB.Where("order_id = ?", orderID).Order("id ASC").Find(&evs).Error
	return evs, err
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Model(&entity.OrderItem{}).
		Select("id, qty, unit_price, total, menu_id, order_id").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

func (r *OrderRepository) DeleteItems(tx *gorm.DB, orderID uint) error {
	return tx.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error
}

func (r *OrderRepository) CountItems(orderID uint) (int, error) {
	items, err := r.GetItems(orderID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		n += it.Qty
	}
	return n, nil
}

// ---------------- Lookups ----------------

func (r *OrderRepository) GetMenuBasics(id uint) (entity.Menu, error) {
	var m entity.Menu
	err := r.DB.Select("id, name, price, available").First(&m, id).Error
	return m, err
}

func (r *OrderRepository) GetStatusIDByName(name string) (uint, error) {
	var row struct{ ID uint }
	err := r.DB.Model(&entity.OrderStatus{}).
		Select("id").Where("status_name = ?", name).First(&row).Error
	return row.ID, err
}
