package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name      string `gorm:"size:100;not null" json:"name"`
	SortOrder int    `gorm:"not null;default:0" json:"sortOrder"`

	TenantID uint   `json:"tenantId"`
	Tenant   Tenant `json:"-"`

	Products []Product `json:"-"`
}
