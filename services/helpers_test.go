package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// a plain ":memory:" DSN gives every pooled connection its own empty
	// database; shared cache keeps all connections on one database while
	// the per-test name preserves isolation between tests
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Tenant{},
		&entity.Category{}, &entity.Product{},
		&entity.ProductOption{}, &entity.OptionItem{},
		&entity.ProductGroup{}, &entity.GroupItem{},
		&entity.Table{}, &entity.OperatingDay{}, &entity.DeliveryFee{},
		&entity.Coupon{}, &entity.CouponUsage{},
		&entity.Order{}, &entity.OrderItem{},
	))
	return db
}

func seedTenant(t *testing.T, db *gorm.DB, plan string) *entity.Tenant {
	t.Helper()
	tenant := &entity.Tenant{
		Name:     "Test Store",
		Slug:     "test-store",
		PlanType: plan,
		IsOpen:   true,
	}
	require.NoError(t, db.Create(tenant).Error)

	// open around the clock so schedule checks pass unless a test
	// replaces these rules
	open, close := "00:00", "23:59"
	for day := 0; day <= 6; day++ {
		rule := entity.OperatingDay{TenantID: tenant.ID, Day: day, OpenTime: &open, CloseTime: &close}
		require.NoError(t, db.Create(&rule).Error)
	}
	return tenant
}

func seedProduct(t *testing.T, db *gorm.DB, tenantID uint, name string, price string, available bool) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		IsAvailable: available,
		TenantID:    tenantID,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedOptionItem(t *testing.T, db *gorm.DB, productID uint, title, name, price string) *entity.OptionItem {
	t.Helper()
	group := &entity.ProductOption{Title: title, Type: entity.OptionTypeCheckbox, ProductID: productID}
	require.NoError(t, db.Create(group).Error)
	item := &entity.OptionItem{Name: name, Price: decimal.RequireFromString(price), ProductOptionID: group.ID}
	require.NoError(t, db.Create(item).Error)
	return item
}

func newOrderService(db *gorm.DB) *OrderService {
	tenantRepo := repository.NewTenantRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	return NewOrderService(
		db,
		orderRepo,
		tenantRepo,
		couponRepo,
		NewPricingService(catalogRepo),
		NewFeeService(tenantRepo),
		NewHoursService(),
		NewCouponService(couponRepo, tenantRepo),
	)
}

func noon() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}
