package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DeliveryFee maps a neighborhood to its delivery price. Neighborhood is
// stored normalized (no accents, uppercase) so "São José" and "sao jose"
// cannot coexist as separate rows.
type DeliveryFee struct {
	gorm.Model
	Neighborhood string          `gorm:"size:100;not null;uniqueIndex:idx_fee_tenant_neighborhood" json:"neighborhood"`
	Fee          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"fee"`

	TenantID uint   `gorm:"uniqueIndex:idx_fee_tenant_neighborhood" json:"tenantId"`
	Tenant   Tenant `json:"-"`
}
