package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/entity"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Creation (always inside the pipeline's tx) ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

// ---------------- Panel queries ----------------

type OrderSummary struct {
	ID           uint            `json:"id"`
	CustomerName string          `json:"customerName"`
	OrderType    string          `json:"orderType"`
	TotalValue   decimal.Decimal `json:"totalValue"`
	Status       string          `json:"status"`
	IsPrinted    bool            `json:"isPrinted"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (r *OrderRepository) ListForTenant(tenantID uint, status string, page, limit int) ([]OrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	q := r.DB.Model(&entity.Order{}).Where("tenant_id = ?", tenantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []OrderSummary
	err := q.Select("id, customer_name, order_type, total_value, status, is_printed, created_at").
		Order("id DESC").Limit(limit).Offset(offset).
		Scan(&out).Error
	return out, total, err
}

func (r *OrderRepository) GetForTenant(tenantID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("tenant_id = ?", tenantID).
		Preload("Items").
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatusFromTo flips the status only when the current value still
// matches, so two panel clients cannot double-apply a transition.
func (r *OrderRepository) UpdateStatusFromTo(tx *gorm.DB, orderID uint, from, to string) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *OrderRepository) MarkPrinted(tenantID, orderID uint) error {
	return r.DB.Model(&entity.Order{}).
		Where("id = ? AND tenant_id = ?", orderID, tenantID).
		Update("is_printed", true).Error
}

// HistoryByPhone powers the customer "my orders" view; phone is stored
// digits-only so the lookup is exact.
func (r *OrderRepository) HistoryByPhone(tenantID uint, phone string, limit int) ([]entity.Order, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	var orders []entity.Order
	err := r.DB.Where("tenant_id = ? AND customer_phone = ?", tenantID, phone).
		Preload("Items").
		Order("id DESC").Limit(limit).
		Find(&orders).Error
	return orders, err
}

// CountUsages is used by tests and reports to cross-check the coupon
// counter against the usage rows.
func (r *OrderRepository) CountUsages(couponID uint) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.CouponUsage{}).Where("coupon_id = ?", couponID).Count(&cnt).Error
	return cnt, err
}
