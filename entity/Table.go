package entity

import (
	"gorm.io/gorm"
)

// Table is a physical table for dine-in orders.
type Table struct {
	gorm.Model
	Number   int  `gorm:"not null;uniqueIndex:idx_table_tenant_number" json:"number"`
	Capacity int  `gorm:"not null;default:4" json:"capacity"`
	IsActive bool `gorm:"not null;default:true" json:"isActive"`

	TenantID uint   `gorm:"uniqueIndex:idx_table_tenant_number" json:"tenantId"`
	Tenant   Tenant `json:"-"`

	Orders []Order `json:"-"`
}
