package configs

import (
	"github.com/IT2357/Hotel-Management-sub000/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.User{},
		&entity.Menu{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.OrderItem{}, &entity.OrderEvent{},
		&entity.KitchenTask{}, &entity.TaskEvent{},
	)
}
