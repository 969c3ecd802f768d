package repository

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/utils"
)

type TenantRepository struct {
	DB *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{DB: db}
}

func (r *TenantRepository) FindBySlug(slug string) (*entity.Tenant, error) {
	var t entity.Tenant
	if err := r.DB.Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepository) Save(t *entity.Tenant) error {
	return r.DB.Save(t).Error
}

// IsOwnedBy checks that the panel user actually owns this store.
func (r *TenantRepository) IsOwnedBy(tenantID, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Tenant{}).
		Where("id = ? AND owner_id = ?", tenantID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

// ---------------- Operating hours ----------------

func (r *TenantRepository) OperatingDays(tenantID uint) ([]entity.OperatingDay, error) {
	var rules []entity.OperatingDay
	err := r.DB.Where("tenant_id = ?", tenantID).Order("day").Find(&rules).Error
	return rules, err
}

// UpsertOperatingDay keeps the (tenant, day) pair unique: one rule per weekday.
func (r *TenantRepository) UpsertOperatingDay(tenantID uint, day int, openTime, closeTime *string, isClosed bool) error {
	var rule entity.OperatingDay
	err := r.DB.Where("tenant_id = ? AND day = ?", tenantID, day).First(&rule).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		rule = entity.OperatingDay{TenantID: tenantID, Day: day}
	}
	rule.OpenTime = openTime
	rule.CloseTime = closeTime
	rule.IsClosed = isClosed
	return r.DB.Save(&rule).Error
}

// ---------------- Delivery fees ----------------

func (r *TenantRepository) DeliveryFees(tenantID uint) ([]entity.DeliveryFee, error) {
	var fees []entity.DeliveryFee
	err := r.DB.Where("tenant_id = ?", tenantID).Order("neighborhood").Find(&fees).Error
	return fees, err
}

// UpsertDeliveryFee stores the neighborhood normalized so entries that
// differ only by case or accents collapse into one row.
func (r *TenantRepository) UpsertDeliveryFee(tenantID uint, neighborhood string, fee decimal.Decimal) error {
	normalized := utils.NormalizeText(neighborhood)
	var row entity.DeliveryFee
	err := r.DB.Where("tenant_id = ? AND neighborhood = ?", tenantID, normalized).First(&row).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		row = entity.DeliveryFee{TenantID: tenantID, Neighborhood: normalized}
	}
	row.Fee = fee
	return r.DB.Save(&row).Error
}

func (r *TenantRepository) DeleteDeliveryFee(tenantID, feeID uint) error {
	return r.DB.Unscoped().
		Where("tenant_id = ?", tenantID).
		Delete(&entity.DeliveryFee{}, feeID).Error
}

// ---------------- Tables ----------------

func (r *TenantRepository) Tables(tenantID uint) ([]entity.Table, error) {
	var tables []entity.Table
	err := r.DB.Where("tenant_id = ?", tenantID).Order("number").Find(&tables).Error
	return tables, err
}

func (r *TenantRepository) FindActiveTable(tenantID uint, number int) (*entity.Table, error) {
	var t entity.Table
	err := r.DB.Where("tenant_id = ? AND number = ? AND is_active = ?", tenantID, number, true).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepository) CreateTable(t *entity.Table) error {
	return r.DB.Create(t).Error
}

func (r *TenantRepository) ToggleTable(tenantID, tableID uint) (bool, error) {
	var t entity.Table
	if err := r.DB.Where("tenant_id = ?", tenantID).First(&t, tableID).Error; err != nil {
		return false, err
	}
	t.IsActive = !t.IsActive
	if err := r.DB.Save(&t).Error; err != nil {
		return false, err
	}
	return t.IsActive, nil
}
