package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RafaelMendes244/RMPedidos/entity"
)

type CouponRepository struct {
	DB *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{DB: db}
}

func (r *CouponRepository) FindByCode(tenantID uint, code string) (*entity.Coupon, error) {
	var c entity.Coupon
	err := r.DB.Where("tenant_id = ? AND code = ?", tenantID, normalizeCode(code)).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByCodeForUpdate loads the coupon under a row lock so the limit
// check and the counter increment cannot race with another redemption.
func (r *CouponRepository) FindByCodeForUpdate(tx *gorm.DB, tenantID uint, code string) (*entity.Coupon, error) {
	var c entity.Coupon
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND code = ?", tenantID, normalizeCode(code)).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) IncrementUsage(tx *gorm.DB, couponID uint) error {
	return tx.Model(&entity.Coupon{}).
		Where("id = ?", couponID).
		Update("used_count", gorm.Expr("used_count + 1")).Error
}

func (r *CouponRepository) CreateUsage(tx *gorm.DB, usage *entity.CouponUsage) error {
	return tx.Create(usage).Error
}

// ---------------- Owner CRUD ----------------

func (r *CouponRepository) ListForTenant(tenantID uint) ([]entity.Coupon, error) {
	var coupons []entity.Coupon
	err := r.DB.Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&coupons).Error
	return coupons, err
}

func (r *CouponRepository) GetForTenant(tenantID, couponID uint) (*entity.Coupon, error) {
	var c entity.Coupon
	err := r.DB.Where("tenant_id = ?", tenantID).First(&c, couponID).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) Create(c *entity.Coupon) error {
	c.Code = normalizeCode(c.Code)
	return r.DB.Create(c).Error
}

func (r *CouponRepository) Update(c *entity.Coupon) error {
	c.Code = normalizeCode(c.Code)
	return r.DB.Save(c).Error
}

func (r *CouponRepository) Delete(tenantID, couponID uint) error {
	if err := r.DB.Unscoped().
		Where("coupon_id = ?", couponID).
		Delete(&entity.CouponUsage{}).Error; err != nil {
		return err
	}
	return r.DB.Unscoped().
		Where("tenant_id = ?", tenantID).
		Delete(&entity.Coupon{}, couponID).Error
}

// coupon codes are stored and compared uppercase
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
