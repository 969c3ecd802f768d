package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Name     string `gorm:"size:100" json:"name"`
	Role     string `gorm:"not null;default:owner" json:"role"` // owner | admin

	Tenants []Tenant `gorm:"foreignKey:OwnerID" json:"-"`
}
