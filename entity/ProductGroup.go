package entity

import (
	"gorm.io/gorm"
)

// ProductGroup is a reusable option template: the owner defines it once
// and imports it into any number of products.
type ProductGroup struct {
	gorm.Model
	Name        string `gorm:"size:100;not null;uniqueIndex:idx_group_tenant_name" json:"name"`
	Type        string `gorm:"size:20;not null;default:checkbox" json:"type"`
	Required    bool   `gorm:"not null;default:false" json:"required"`
	MaxQuantity int    `gorm:"not null;default:10" json:"maxQuantity"`

	TenantID uint   `gorm:"uniqueIndex:idx_group_tenant_name" json:"tenantId"`
	Tenant   Tenant `json:"-"`

	Items []GroupItem `json:"items"`
}
