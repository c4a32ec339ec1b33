package configs

import (
	"log"

	"github.com/IT2357/Hotel-Management-sub000/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedManager creates the first manager account from env.
func SeedManager() error {
	db := DB()
	email := getEnv("MANAGER_EMAIL", "")
	pass := getEnv("MANAGER_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding manager: missing MANAGER_EMAIL/MANAGER_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("manager already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	manager := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Manager",
		LastName:  "Seed",
		Role:      entity.RoleManager,
	}
	return db.Create(&manager).Error
}

// SeedLookups inserts the fixed order statuses and a starter room-service
// menu so a fresh database is usable.
func SeedLookups() error {
	db := DB()

	for _, name := range []string{
		entity.StatusPending, entity.StatusConfirmed, entity.StatusPreparing,
		entity.StatusReady, entity.StatusDelivered, entity.StatusCancelled,
		entity.StatusModified,
	} {
		db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: name})
	}

	menus := []entity.Menu{
		{Name: "Tom Yum Goong", Price: 28000, Available: true},
		{Name: "Pad Thai", Price: 18000, Available: true},
		{Name: "Green Curry", Price: 22000, Available: true},
		{Name: "Mango Sticky Rice", Price: 12000, Available: true},
		{Name: "Club Sandwich", Price: 20000, Available: true},
	}
	for _, m := range menus {
		db.FirstOrCreate(&entity.Menu{}, entity.Menu{Name: m.Name, Price: m.Price, Available: m.Available})
	}
	return nil
}
