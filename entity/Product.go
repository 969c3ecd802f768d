package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	// strike-through price and badge are display-only
	OriginalPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"originalPrice,omitempty"`
	Badge         string           `gorm:"size:50" json:"badge,omitempty"`

	IsAvailable bool `gorm:"not null;default:true" json:"isAvailable"`

	TenantID uint   `json:"tenantId"`
	Tenant   Tenant `json:"-"`

	CategoryID uint     `json:"categoryId"`
	Category   Category `json:"-"`

	Options []ProductOption `json:"-"` // preload for the menu detail only
}
