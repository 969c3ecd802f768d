package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CouponUsage links a coupon to the order it was redeemed on.
// One row per redemption, written in the same transaction as the order.
type CouponUsage struct {
	gorm.Model
	DiscountApplied decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discountApplied"`

	CouponID uint   `json:"couponId"`
	Coupon   Coupon `json:"-"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`
}
