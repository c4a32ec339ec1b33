package entity

import (
	"gorm.io/gorm"
)

// Roles
const (
	RoleGuest   = "guest"
	RoleStaff   = "staff"
	RoleManager = "manager"
)

type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex" json:"email"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`

	Orders []Order `json:"-"`
}
