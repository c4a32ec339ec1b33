package services

import (
	"errors"
	"fmt"

	"github.com/IT2357/Hotel-Management-sub000/entity"
	"github.com/IT2357/Hotel-Management-sub000/repository"

	"gorm.io/gorm"
)

// StatusIDs caches the seeded lookup rows so transitions can guard on ids.
type StatusIDs struct {
	Pending   uint
	Confirmed uint
	Preparing uint
	Ready     uint
	Delivered uint
	Cancelled uint
	Modified  uint
}

// Pricing are the business parameters the source system hard-coded in its
// controllers; here they come from configuration.
type Pricing struct {
	TaxRatePercent int
	DeliveryFee    int64
	FlatDiscount   int64
	Currency       string
}

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	Tasks    *TaskService
	Notifier Notifier
	Pricing  Pricing

	Status      StatusIDs
	statusNames map[uint]string
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	tasks *TaskService,
	notifier Notifier,
	pricing Pricing,
) *OrderService {
	s := &OrderService{DB: db, Repo: repo, Tasks: tasks, Notifier: notifier, Pricing: pricing}
	s.statusNames = make(map[uint]string)

	resolve := func(name string, dst *uint) {
		if id, err := repo.GetStatusIDByName(name); err == nil {
			*dst = id
			s.statusNames[id] = name
		}
	}
	resolve(entity.StatusPending, &s.Status.Pending)
	resolve(entity.StatusConfirmed, &s.Status.Confirmed)
	resolve(entity.StatusPreparing, &s.Status.Preparing)
	resolve(entity.StatusReady, &s.Status.Ready)
	resolve(entity.StatusDelivered, &s.Status.Delivered)
	resolve(entity.StatusCancelled, &s.Status.Cancelled)
	resolve(entity.StatusModified, &s.Status.Modified)

	return s
}

// StatusName resolves a status id back to its seeded name; used for refund
// basis recording and client-facing error messages.
func (s *OrderService) StatusName(id uint) string {
	return s.statusNames[id]
}

// ----- DTOs from Controller -----

type OrderItemIn struct {
	MenuID uint `json:"menuId" binding:"required"`
	Qty    int  `json:"qty" binding:"required,min=1"`
}

type CreateOrderReq struct {
	Channel      string        `json:"channel" binding:"required,oneof=dine_in takeaway delivery room_service"`
	RoomNumber   string        `json:"roomNumber"`
	ContactName  string        `json:"contactName" binding:"required"`
	ContactPhone string        `json:"contactPhone"`
	Address      string        `json:"address"`
	Notes        string        `json:"notes"`
	Items        []OrderItemIn `json:"items" binding:"required,min=1"`
}

type CreateOrderRes struct {
	ID         uint   `json:"id"`
	Total      int64  `json:"total"`
	PaymentRef string `json:"paymentRef"`
}

// priceItems re-reads unit prices from the catalog. Client-supplied prices
// are never trusted.
func (s *OrderService) priceItems(items []OrderItemIn) ([]entity.OrderItem, int64, error) {
	var subtotal int64
	rows := make([]entity.OrderItem, 0, len(items))
	for _, it := range items {
		m, err := s.Repo.GetMenuBasics(it.MenuID)
		if err != nil || !m.Available {
			return nil, 0, ErrMenuNotFound
		}
		subtotal += m.Price * int64(it.Qty)
		rows = append(rows, entity.OrderItem{
			MenuID:    m.ID,
			Qty:       it.Qty,
			UnitPrice: m.Price,
			Total:     m.Price * int64(it.Qty),
		})
	}
	return rows, subtotal, nil
}

func (s *OrderService) computeTotals(subtotal int64, channel string) (tax, discount, fee, total int64) {
	tax = (subtotal*int64(s.Pricing.TaxRatePercent) + 50) / 100
	discount = s.Pricing.FlatDiscount
	if discount > subtotal {
		discount = subtotal
	}
	if channel == entity.ChannelDelivery {
		fee = s.Pricing.DeliveryFee
	}
	total = subtotal - discount + tax + fee
	return
}

// ----- Create -----

func (s *OrderService) Create(userID uint, req *CreateOrderReq) (*CreateOrderRes, error) {
	if req.Channel == entity.ChannelRoomService && req.RoomNumber == "" {
		return nil, errors.New("roomNumber is required for room service")
	}

	rows, subtotal, err := s.priceItems(req.Items)
	if err != nil {
		return nil, err
	}
	tax, discount, fee, total := s.computeTotals(subtotal, req.Channel)

	var out CreateOrderRes
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			Subtotal:      subtotal,
			Tax:           tax,
			Discount:      discount,
			DeliveryFee:   fee,
			Total:         total,
			Currency:      s.Pricing.Currency,
			Channel:       req.Channel,
			RoomNumber:    req.RoomNumber,
			ContactName:   req.ContactName,
			ContactPhone:  req.ContactPhone,
			Address:       req.Address,
			Notes:         req.Notes,
			UserID:        userID,
			PaymentStatus: entity.PaymentUnpaid,
			KitchenStatus: entity.KitchenQueued,
			OrderStatusID: s.Status.Pending,
		}
		if err := s.Repo.Create(tx, &order); err != nil {
			return err
		}
		// gateway order reference, handed to the payment gateway at initiation
		ref := fmt.Sprintf("pay-%06d", order.ID)
		if err := tx.Model(&order).Update("payment_ref", ref).Error; err != nil {
			return err
		}

		for i := range rows {
			rows[i].OrderID = order.ID
			if err := s.Repo.CreateItem(tx, &rows[i]); err != nil {
				return err
			}
		}

		ev := &entity.OrderEvent{OrderID: order.ID, ToStatusID: s.Status.Pending, ActorID: &userID, Note: "order placed"}
		if err := s.Repo.AppendEvent(tx, ev); err != nil {
			return err
		}

		out = CreateOrderRes{ID: order.ID, Total: order.Total, PaymentRef: ref}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notify(s.Notifier, AudienceStaff, "order.placed", out)
	return &out, nil
}

// ----- List & Detail -----

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListForUser(userID, limit)
}

type OrderDetail struct {
	Order  entity.Order         `json:"order"`
	Status string               `json:"status"`
	Items  []entity.OrderItem   `json:"items"`
	Events []entity.OrderEvent  `json:"events"`
	Tasks  []entity.KitchenTask `json:"tasks"`
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	items, err := s.Repo.GetItems(o.ID)
	if err != nil {
		return nil, err
	}
	events, err := s.Repo.GetEvents(o.ID)
	if err != nil {
		return nil, err
	}
	var tasks []entity.KitchenTask
	if err := s.DB.Where("order_id = ?", o.ID).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return &OrderDetail{
		Order:  *o,
		Status: s.StatusName(o.OrderStatusID),
		Items:  items,
		Events: events,
		Tasks:  tasks,
	}, nil
}
