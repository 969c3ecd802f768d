package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Coupon struct {
	gorm.Model
	Code        string `gorm:"size:20;not null;uniqueIndex:idx_coupon_tenant_code" json:"code"`
	Description string `gorm:"size:200" json:"description"`

	DiscountType  string          `gorm:"size:20;not null;default:percentage" json:"discountType"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discountValue"`

	// orders below this subtotal cannot use the coupon; zero disables the check
	MinimumOrderValue decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"minimumOrderValue"`

	UsageLimit int `gorm:"not null;default:0" json:"usageLimit"` // 0 = unlimited
	UsedCount  int `gorm:"not null;default:0" json:"usedCount"`

	ValidFrom  *time.Time `json:"validFrom,omitempty"`
	ValidUntil *time.Time `json:"validUntil,omitempty"`

	IsActive bool `gorm:"not null;default:true" json:"isActive"`

	TenantID uint   `gorm:"uniqueIndex:idx_coupon_tenant_code" json:"tenantId"`
	Tenant   Tenant `json:"-"`

	Usages []CouponUsage `json:"-"`
}
