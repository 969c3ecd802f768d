package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/pkg/apperr"
	"github.com/RafaelMendes244/RMPedidos/repository"
)

func timep(t time.Time) *time.Time { return &t }

func TestValidateCouponCheckOrder(t *testing.T) {
	svc := &CouponService{}
	now := noon()

	// inactive wins even when every other check would also fail
	c := &entity.Coupon{
		IsActive:   false,
		UsageLimit: 1,
		UsedCount:  1,
		ValidFrom:  timep(now.Add(time.Hour)),
		ValidUntil: timep(now.Add(-time.Hour)),
	}
	ok, msg := svc.ValidateCoupon(c, now)
	assert.False(t, ok)
	assert.Equal(t, "Coupon is disabled", msg)

	c.IsActive = true
	ok, msg = svc.ValidateCoupon(c, now)
	assert.False(t, ok)
	assert.Equal(t, "Coupon has reached its usage limit", msg)

	c.UsedCount = 0
	ok, msg = svc.ValidateCoupon(c, now)
	assert.False(t, ok)
	assert.Equal(t, "Coupon is not valid yet", msg)

	c.ValidFrom = nil
	ok, msg = svc.ValidateCoupon(c, now)
	assert.False(t, ok)
	assert.Equal(t, "Coupon has expired", msg)

	c.ValidUntil = nil
	ok, msg = svc.ValidateCoupon(c, now)
	assert.True(t, ok)
	assert.Equal(t, "Coupon is valid", msg)
}

func TestValidateCouponZeroLimitIsUnlimited(t *testing.T) {
	svc := &CouponService{}
	c := &entity.Coupon{IsActive: true, UsageLimit: 0, UsedCount: 5000}
	ok, _ := svc.ValidateCoupon(c, noon())
	assert.True(t, ok)
}

func TestApplyDiscountPercentage(t *testing.T) {
	svc := &CouponService{}
	c := &entity.Coupon{DiscountType: entity.DiscountPercentage, DiscountValue: decimal.NewFromInt(10)}

	final, discount := svc.ApplyDiscount(c, decimal.NewFromInt(50))
	assert.True(t, discount.Equal(decimal.NewFromInt(5)), "discount %s", discount)
	assert.True(t, final.Equal(decimal.NewFromInt(45)), "final %s", final)
}

func TestApplyDiscountFixedClampsToSubtotal(t *testing.T) {
	svc := &CouponService{}
	c := &entity.Coupon{DiscountType: entity.DiscountFixed, DiscountValue: decimal.NewFromInt(50)}

	final, discount := svc.ApplyDiscount(c, decimal.NewFromInt(30))
	assert.True(t, discount.Equal(decimal.NewFromInt(30)), "discount %s", discount)
	assert.True(t, final.IsZero(), "final %s", final)
}

func TestQuote(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	repo := repository.NewCouponRepository(db)
	svc := NewCouponService(repo, repository.NewTenantRepository(db))

	coupon := &entity.Coupon{
		TenantID:          tenant.ID,
		Code:              "WELCOME10",
		DiscountType:      entity.DiscountPercentage,
		DiscountValue:     decimal.NewFromInt(10),
		MinimumOrderValue: decimal.NewFromInt(40),
		IsActive:          true,
	}
	require.NoError(t, db.Create(coupon).Error)

	// code lookup is case-insensitive via normalization
	quote, err := svc.Quote(tenant.ID, "welcome10", decimal.NewFromInt(50), noon())
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", quote.Code)
	assert.True(t, quote.DiscountAmount.Equal(decimal.NewFromInt(5)))
	assert.True(t, quote.FinalValue.Equal(decimal.NewFromInt(45)))

	// below the minimum order value
	_, err = svc.Quote(tenant.ID, "WELCOME10", decimal.NewFromInt(30), noon())
	require.Error(t, err)
	assert.Equal(t, apperr.BusinessRule, apperr.KindOf(err))

	// quoting must not burn a redemption
	var reloaded entity.Coupon
	require.NoError(t, db.First(&reloaded, coupon.ID).Error)
	assert.Equal(t, 0, reloaded.UsedCount)

	_, err = svc.Quote(tenant.ID, "NOPE", decimal.NewFromInt(50), noon())
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
