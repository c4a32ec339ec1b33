package services

import (
	"sync"
	"testing"

	"github.com/IT2357/Hotel-Management-sub000/entity"
	"github.com/IT2357/Hotel-Management-sub000/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// menu prices seeded into every test database, minor units
const (
	menuSoupPrice   = 50000 // id 1
	menuNoodlePrice = 18000 // id 2
	menuRicePrice   = 12000 // id 3
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive and serializes
	// concurrent test goroutines the way a busy server pool would
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Menu{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.OrderItem{}, &entity.OrderEvent{},
		&entity.KitchenTask{}, &entity.TaskEvent{},
	))

	for _, name := range []string{
		entity.StatusPending, entity.StatusConfirmed, entity.StatusPreparing,
		entity.StatusReady, entity.StatusDelivered, entity.StatusCancelled,
		entity.StatusModified,
	} {
		require.NoError(t, db.Create(&entity.OrderStatus{StatusName: name}).Error)
	}

	menus := []entity.Menu{
		{Name: "Tom Yum Goong", Price: menuSoupPrice, Available: true},
		{Name: "Pad Thai", Price: menuNoodlePrice, Available: true},
		{Name: "Mango Sticky Rice", Price: menuRicePrice, Available: true},
	}
	for i := range menus {
		require.NoError(t, db.Create(&menus[i]).Error)
	}

	return db
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) Notify(audience, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, audience+":"+event)
}

func (f *fakeNotifier) seen(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e == key {
			return true
		}
	}
	return false
}

func testPricing() Pricing {
	return Pricing{TaxRatePercent: 10, DeliveryFee: 2000, FlatDiscount: 0, Currency: "THB"}
}

func newTestServices(t *testing.T) (*OrderService, *TaskService, *fakeNotifier, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	n := &fakeNotifier{}
	tasks := NewTaskService(db, repository.NewTaskRepository(db), n)
	orders := NewOrderService(db, repository.NewOrderRepository(db), tasks, n, testPricing())
	return orders, tasks, n, db
}

func placeOrder(t *testing.T, orders *OrderService, userID uint, channel string, items ...OrderItemIn) *CreateOrderRes {
	t.Helper()
	req := &CreateOrderReq{
		Channel:     channel,
		ContactName: "Test Guest",
		Items:       items,
	}
	if channel == entity.ChannelRoomService {
		req.RoomNumber = "1204"
	}
	if channel == entity.ChannelDelivery {
		req.Address = "12 Beach Rd"
	}
	out, err := orders.Create(userID, req)
	require.NoError(t, err)
	return out
}
