package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/pkg/apperr"
	"github.com/RafaelMendes244/RMPedidos/repository"
)

var oneHundred = decimal.NewFromInt(100)

type CouponService struct {
	Repo       *repository.CouponRepository
	TenantRepo *repository.TenantRepository
}

func NewCouponService(repo *repository.CouponRepository, tenantRepo *repository.TenantRepository) *CouponService {
	return &CouponService{Repo: repo, TenantRepo: tenantRepo}
}

// ValidateCoupon runs the applicability checks in a fixed order; the
// first failing check decides the message.
func (s *CouponService) ValidateCoupon(c *entity.Coupon, now time.Time) (bool, string) {
	if !c.IsActive {
		return false, "Coupon is disabled"
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return false, "Coupon has reached its usage limit"
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return false, "Coupon is not valid yet"
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return false, "Coupon has expired"
	}
	return true, "Coupon is valid"
}

// ApplyDiscount computes the discount for a subtotal. The discount is
// clamped to the subtotal so the final value can never go negative.
// The minimum-order-value check belongs to the caller, against the
// items subtotal, before calling this.
func (s *CouponService) ApplyDiscount(c *entity.Coupon, subtotal decimal.Decimal) (finalValue, discount decimal.Decimal) {
	if c.DiscountType == entity.DiscountPercentage {
		discount = subtotal.Mul(c.DiscountValue.Div(oneHundred))
	} else {
		discount = c.DiscountValue
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	return subtotal.Sub(discount), discount
}

// CouponQuote is the public pre-checkout answer; it mutates nothing.
type CouponQuote struct {
	Code           string          `json:"code"`
	Description    string          `json:"description"`
	DiscountType   string          `json:"discountType"`
	DiscountValue  decimal.Decimal `json:"discountValue"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalValue     decimal.Decimal `json:"finalValue"`
}

// Quote validates a code against a proposed order value without
// touching the usage counter; that only moves at order commit.
func (s *CouponService) Quote(tenantID uint, code string, orderValue decimal.Decimal, now time.Time) (*CouponQuote, error) {
	coupon, err := s.Repo.FindByCode(tenantID, code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Coupon not found")
		}
		return nil, apperr.Wrap(apperr.Unexpected, "could not look up coupon", err)
	}

	if ok, msg := s.ValidateCoupon(coupon, now); !ok {
		return nil, apperr.New(apperr.BusinessRule, msg)
	}

	if coupon.MinimumOrderValue.IsPositive() && orderValue.LessThan(coupon.MinimumOrderValue) {
		return nil, apperr.New(apperr.BusinessRule,
			fmt.Sprintf("Minimum order value for this coupon is %s", coupon.MinimumOrderValue.StringFixed(2)))
	}

	finalValue, discount := s.ApplyDiscount(coupon, orderValue)
	return &CouponQuote{
		Code:           coupon.Code,
		Description:    coupon.Description,
		DiscountType:   coupon.DiscountType,
		DiscountValue:  coupon.DiscountValue,
		DiscountAmount: discount,
		FinalValue:     finalValue,
	}, nil
}

// ----- Owner management (plan-gated) -----

type CouponIn struct {
	Code              string          `json:"code" binding:"required"`
	Description       string          `json:"description"`
	DiscountType      string          `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue     decimal.Decimal `json:"discountValue" binding:"required"`
	MinimumOrderValue decimal.Decimal `json:"minimumOrderValue"`
	UsageLimit        int             `json:"usageLimit"`
	ValidFrom         *time.Time      `json:"validFrom"`
	ValidUntil        *time.Time      `json:"validUntil"`
	IsActive          bool            `json:"isActive"`
}

func (s *CouponService) ListForOwner(userID, tenantID uint, now time.Time) ([]entity.Coupon, error) {
	if err := s.gate(userID, tenantID, now); err != nil {
		return nil, err
	}
	coupons, err := s.Repo.ListForTenant(tenantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not list coupons", err)
	}
	return coupons, nil
}

func (s *CouponService) CreateForOwner(userID, tenantID uint, in *CouponIn, now time.Time) (*entity.Coupon, error) {
	if err := s.gate(userID, tenantID, now); err != nil {
		return nil, err
	}
	if err := validateCouponIn(in); err != nil {
		return nil, err
	}
	c := &entity.Coupon{
		TenantID:          tenantID,
		Code:              in.Code,
		Description:       in.Description,
		DiscountType:      in.DiscountType,
		DiscountValue:     in.DiscountValue,
		MinimumOrderValue: in.MinimumOrderValue,
		UsageLimit:        in.UsageLimit,
		ValidFrom:         in.ValidFrom,
		ValidUntil:        in.ValidUntil,
		IsActive:          in.IsActive,
	}
	if err := s.Repo.Create(c); err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not create coupon", err)
	}
	return c, nil
}

func (s *CouponService) UpdateForOwner(userID, tenantID, couponID uint, in *CouponIn, now time.Time) (*entity.Coupon, error) {
	if err := s.gate(userID, tenantID, now); err != nil {
		return nil, err
	}
	if err := validateCouponIn(in); err != nil {
		return nil, err
	}
	c, err := s.Repo.GetForTenant(tenantID, couponID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Coupon not found")
		}
		return nil, apperr.Wrap(apperr.Unexpected, "could not load coupon", err)
	}
	c.Code = in.Code
	c.Description = in.Description
	c.DiscountType = in.DiscountType
	c.DiscountValue = in.DiscountValue
	c.MinimumOrderValue = in.MinimumOrderValue
	c.UsageLimit = in.UsageLimit
	c.ValidFrom = in.ValidFrom
	c.ValidUntil = in.ValidUntil
	c.IsActive = in.IsActive
	if err := s.Repo.Update(c); err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not update coupon", err)
	}
	return c, nil
}

func (s *CouponService) DeleteForOwner(userID, tenantID, couponID uint, now time.Time) error {
	if err := s.gate(userID, tenantID, now); err != nil {
		return err
	}
	if err := s.Repo.Delete(tenantID, couponID); err != nil {
		return apperr.Wrap(apperr.Unexpected, "could not delete coupon", err)
	}
	return nil
}

func validateCouponIn(in *CouponIn) error {
	if !in.DiscountValue.IsPositive() {
		return apperr.New(apperr.Validation, "Discount value must be positive")
	}
	if in.DiscountType == entity.DiscountPercentage && in.DiscountValue.GreaterThan(oneHundred) {
		return apperr.New(apperr.Validation, "Percentage discount cannot exceed 100")
	}
	if in.MinimumOrderValue.IsNegative() {
		return apperr.New(apperr.Validation, "Minimum order value cannot be negative")
	}
	if in.UsageLimit < 0 {
		return apperr.New(apperr.Validation, "Usage limit cannot be negative")
	}
	return nil
}

// gate: coupons are a pro/trial feature and only the store owner may
// manage them.
func (s *CouponService) gate(userID, tenantID uint, now time.Time) error {
	ok, err := s.TenantRepo.IsOwnedBy(tenantID, userID)
	if err != nil {
		return apperr.Wrap(apperr.Unexpected, "could not verify store ownership", err)
	}
	if !ok {
		return apperr.New(apperr.Forbidden, "You do not manage this store")
	}
	var tenant entity.Tenant
	if err := s.TenantRepo.DB.First(&tenant, tenantID).Error; err != nil {
		return apperr.Wrap(apperr.Unexpected, "could not load store", err)
	}
	if !tenant.CanAccessCoupons(now) {
		return apperr.New(apperr.Forbidden, "Coupons require the Pro plan")
	}
	return nil
}
