package services

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/pkg/apperr"
)

type notifierSpy struct {
	tenantID uint
	orders   []*entity.Order
}

func (n *notifierSpy) NotifyNewOrder(tenantID uint, order *entity.Order) {
	n.tenantID = tenantID
	n.orders = append(n.orders, order)
}

func deliveryReq(productID uint, qty int) *CreateOrderReq {
	return &CreateOrderReq{
		OrderType:     entity.ChannelDelivery,
		CustomerName:  "Maria Silva",
		CustomerPhone: "11987654321",
		PaymentMethod: "pix",
		Address: &OrderAddressIn{
			CEP:          "01310100",
			Street:       "Av. Paulista",
			Number:       "1578",
			Neighborhood: "Bela Vista",
		},
		Items: []OrderLineIn{{ProductID: productID, Quantity: qty}},
	}
}

func countOrders(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&n).Error)
	return n
}

func TestCreateOrderDelivery(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	product := seedProduct(t, db, tenant.ID, "X-Burger", "20.00", true)
	require.NoError(t, db.Create(&entity.DeliveryFee{
		TenantID: tenant.ID, Neighborhood: "BELA VISTA", Fee: decimal.NewFromInt(5),
	}).Error)

	svc := newOrderService(db)
	spy := &notifierSpy{}
	svc.Notifier = spy

	res, err := svc.Create(tenant.Slug, deliveryReq(product.ID, 2), noon())
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(45)), "total %s", res.Total)

	var order entity.Order
	require.NoError(t, db.Preload("Items").First(&order, res.ID).Error)
	assert.Equal(t, entity.StatusPending, order.Status)
	assert.True(t, order.DeliveryFee.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "Bela Vista", order.AddressNeighborhood)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "X-Burger", order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(20)))

	require.Len(t, spy.orders, 1)
	assert.Equal(t, tenant.ID, spy.tenantID)
}

func TestCreateOrderRejectsWhenClosed(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	product := seedProduct(t, db, tenant.ID, "X-Burger", "20.00", true)
	svc := newOrderService(db)

	tenant.IsOpen = false
	require.NoError(t, db.Save(tenant).Error)
	_, err := svc.Create(tenant.Slug, deliveryReq(product.ID, 1), noon())
	require.Error(t, err)
	assert.Equal(t, apperr.BusinessRule, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "temporarily closed")

	tenant.IsOpen = true
	tenant.ManualOverride = true
	require.NoError(t, db.Save(tenant).Error)
	_, err = svc.Create(tenant.Slug, deliveryReq(product.ID, 1), noon())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed early today")

	assert.EqualValues(t, 0, countOrders(t, db))
}

func TestCreateOrderOutsideHours(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	product := seedProduct(t, db, tenant.ID, "X-Burger", "20.00", true)

	// evenings only
	require.NoError(t, db.Model(&entity.OperatingDay{}).
		Where("tenant_id = ?", tenant.ID).
		Updates(map[string]any{"open_time": "18:00", "close_time": "23:00"}).Error)

	svc := newOrderService(db)
	_, err := svc.Create(tenant.Slug, deliveryReq(product.ID, 1), noon())
	require.Error(t, err)
	assert.Equal(t, apperr.BusinessRule, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Outside opening hours")
	assert.EqualValues(t, 0, countOrders(t, db))
}

func TestCreateOrderUnavailableProductLeavesNoRows(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	good := seedProduct(t, db, tenant.ID, "X-Burger", "20.00", true)
	gone := seedProduct(t, db, tenant.ID, "Feijoada", "35.00", false)

	svc := newOrderService(db)
	req := deliveryReq(good.ID, 1)
	req.Items = append(req.Items, OrderLineIn{ProductID: gone.ID, Quantity: 1})

	_, err := svc.Create(tenant.Slug, req, noon())
	require.Error(t, err)
	assert.Equal(t, apperr.BusinessRule, apperr.KindOf(err))

	assert.EqualValues(t, 0, countOrders(t, db))
	var items int64
	require.NoError(t, db.Model(&entity.OrderItem{}).Count(&items).Error)
	assert.EqualValues(t, 0, items)
}

func TestCreateOrderTable(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	product := seedProduct(t, db, tenant.ID, "X-Burger", "20.00", true)
	require.NoError(t, db.Create(&entity.Table{TenantID: tenant.ID, Number: 7, Capacity: 4, IsActive: true}).Error)

	svc := newOrderService(db)

	// a table number overrides the claimed channel; no address needed
	req := &CreateOrderReq{
		OrderType:     entity.ChannelDelivery,
		CustomerName:  "Maria Silva",
		CustomerPhone: "11987654321",
		PaymentMethod: "dinheiro",
		TableNumber:   7,
		Items:         []OrderLineIn{{ProductID: product.ID, Quantity: 1}},
	}
	res, err := svc.Create(tenant.Slug, req, noon())
	require.NoError(t, err)
	assert.Equal(t, entity.ChannelTable, res.OrderType)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(20)), "total %s", res.Total)

	var order entity.Order
	require.NoError(t, db.First(&order, res.ID).Error)
	assert.True(t, order.DeliveryFee.IsZero())
	require.NotNil(t, order.TableID)

	req.TableNumber = 99
	_, err = svc.Create(tenant.Slug, req, noon())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Table not found or inactive")
}

func TestCreateOrderPickupHasNoFee(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	product := seedProduct(t, db, tenant.ID, "X-Burger", "20.00", true)
	require.NoError(t, db.Create(&entity.DeliveryFee{
		TenantID: tenant.ID, Neighborhood: "BELA VISTA", Fee: decimal.NewFromInt(5),
	}).Error)

	svc := newOrderService(db)
	req := &CreateOrderReq{
		OrderType:     entity.ChannelPickup,
		CustomerName:  "Maria Silva",
		CustomerPhone: "11987654321",
		PaymentMethod: "pix",
		Items:         []OrderLineIn{{ProductID: product.ID, Quantity: 1}},
	}
	res, err := svc.Create(tenant.Slug, req, noon())
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(20)), "total %s", res.Total)
}

func TestCreateOrderAppliesCoupon(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	product := seedProduct(t, db, tenant.ID, "X-Burger", "20.00", true)
	require.NoError(t, db.Create(&entity.Coupon{
		TenantID:      tenant.ID,
		Code:          "DEZ",
		DiscountType:  entity.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	}).Error)

	svc := newOrderService(db)
	req := &CreateOrderReq{
		OrderType:     entity.ChannelPickup,
		CustomerName:  "Maria Silva",
		CustomerPhone: "11987654321",
		PaymentMethod: "pix",
		CouponCode:    "dez",
		Items:         []OrderLineIn{{ProductID: product.ID, Quantity: 2}},
	}
	res, err := svc.Create(tenant.Slug, req, noon())
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(36)), "total %s", res.Total)

	var order entity.Order
	require.NoError(t, db.First(&order, res.ID).Error)
	require.NotNil(t, order.CouponID)
	assert.True(t, order.DiscountValue.Equal(decimal.NewFromInt(4)))

	var coupon entity.Coupon
	require.NoError(t, db.First(&coupon, *order.CouponID).Error)
	assert.Equal(t, 1, coupon.UsedCount)

	// usage rows must agree with the counter
	usages, err := svc.Repo.CountUsages(*order.CouponID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, usages)
}

func TestCreateOrderDropsBadCouponSilently(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	product := seedProduct(t, db, tenant.ID, "X-Burger", "20.00", true)
	require.NoError(t, db.Create(&entity.Coupon{
		TenantID:      tenant.ID,
		Code:          "MORTO",
		DiscountType:  entity.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      false,
	}).Error)

	svc := newOrderService(db)
	req := &CreateOrderReq{
		OrderType:     entity.ChannelPickup,
		CustomerName:  "Maria Silva",
		CustomerPhone: "11987654321",
		PaymentMethod: "pix",
		CouponCode:    "MORTO",
		Items:         []OrderLineIn{{ProductID: product.ID, Quantity: 1}},
	}
	res, err := svc.Create(tenant.Slug, req, noon())
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(20)), "total %s", res.Total)

	var order entity.Order
	require.NoError(t, db.First(&order, res.ID).Error)
	assert.Nil(t, order.CouponID)
	assert.True(t, order.DiscountValue.IsZero())
}

func TestCreateOrderExhaustedCouponDoesNotOversell(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	product := seedProduct(t, db, tenant.ID, "X-Burger", "20.00", true)
	require.NoError(t, db.Create(&entity.Coupon{
		TenantID:      tenant.ID,
		Code:          "ULTIMO",
		DiscountType:  entity.DiscountFixed,
		DiscountValue: decimal.NewFromInt(5),
		UsageLimit:    1,
		UsedCount:     1,
		IsActive:      true,
	}).Error)

	svc := newOrderService(db)
	req := &CreateOrderReq{
		OrderType:     entity.ChannelPickup,
		CustomerName:  "Maria Silva",
		CustomerPhone: "11987654321",
		PaymentMethod: "pix",
		CouponCode:    "ULTIMO",
		Items:         []OrderLineIn{{ProductID: product.ID, Quantity: 1}},
	}
	res, err := svc.Create(tenant.Slug, req, noon())
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(20)), "total %s", res.Total)

	var coupon entity.Coupon
	require.NoError(t, db.Where("code = ?", "ULTIMO").First(&coupon).Error)
	assert.Equal(t, 1, coupon.UsedCount)
}

func TestConcurrentRedemptionsNeverOversellCoupon(t *testing.T) {
	db := newTestDB(t)
	// sqlite throws busy errors on overlapping write transactions; one
	// connection forces them to queue, which is exactly the contention
	// the row lock must survive
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	tenant := seedTenant(t, db, entity.PlanPro)
	product := seedProduct(t, db, tenant.ID, "X-Burger", "20.00", true)
	require.NoError(t, db.Create(&entity.Coupon{
		TenantID:      tenant.ID,
		Code:          "UNICO",
		DiscountType:  entity.DiscountFixed,
		DiscountValue: decimal.NewFromInt(5),
		UsageLimit:    1,
		IsActive:      true,
	}).Error)

	svc := newOrderService(db)

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(tenant.Slug, &CreateOrderReq{
				OrderType:     entity.ChannelPickup,
				CustomerName:  "Maria Silva",
				CustomerPhone: "11987654321",
				PaymentMethod: "pix",
				CouponCode:    "UNICO",
				Items:         []OrderLineIn{{ProductID: product.ID, Quantity: 1}},
			}, noon())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	// every submission goes through; at most one keeps the coupon
	for err := range errs {
		require.NoError(t, err)
	}
	assert.EqualValues(t, attempts, countOrders(t, db))

	var coupon entity.Coupon
	require.NoError(t, db.Where("code = ?", "UNICO").First(&coupon).Error)
	assert.Equal(t, 1, coupon.UsedCount)

	usages, err := svc.Repo.CountUsages(coupon.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, usages)

	var discounted int64
	require.NoError(t, db.Model(&entity.Order{}).Where("coupon_id IS NOT NULL").Count(&discounted).Error)
	assert.EqualValues(t, 1, discounted)
}

func TestCreateOrderCouponMinimumUsesItemsSubtotal(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	product := seedProduct(t, db, tenant.ID, "X-Burger", "20.00", true)
	require.NoError(t, db.Create(&entity.DeliveryFee{
		TenantID: tenant.ID, Neighborhood: "BELA VISTA", Fee: decimal.NewFromInt(10),
	}).Error)
	// subtotal is 40, fee takes the order to 50; the minimum still fails
	require.NoError(t, db.Create(&entity.Coupon{
		TenantID:          tenant.ID,
		Code:              "MIN45",
		DiscountType:      entity.DiscountFixed,
		DiscountValue:     decimal.NewFromInt(5),
		MinimumOrderValue: decimal.NewFromInt(45),
		IsActive:          true,
	}).Error)

	svc := newOrderService(db)
	req := deliveryReq(product.ID, 2)
	req.CouponCode = "MIN45"

	res, err := svc.Create(tenant.Slug, req, noon())
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(50)), "total %s", res.Total)

	var order entity.Order
	require.NoError(t, db.First(&order, res.ID).Error)
	assert.Nil(t, order.CouponID)
}

func TestCreateOrderStarterAutoCompletes(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanStarter)
	product := seedProduct(t, db, tenant.ID, "X-Burger", "20.00", true)

	svc := newOrderService(db)
	res, err := svc.Create(tenant.Slug, &CreateOrderReq{
		OrderType:     entity.ChannelPickup,
		CustomerName:  "Maria Silva",
		CustomerPhone: "11987654321",
		PaymentMethod: "pix",
		Items:         []OrderLineIn{{ProductID: product.ID, Quantity: 1}},
	}, noon())
	require.NoError(t, err)

	var order entity.Order
	require.NoError(t, db.First(&order, res.ID).Error)
	assert.Equal(t, entity.StatusCompleted, order.Status)
}

func TestOrderStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	product := seedProduct(t, db, tenant.ID, "X-Burger", "20.00", true)

	owner := &entity.User{Email: "owner@example.com", Role: "owner"}
	require.NoError(t, db.Create(owner).Error)
	tenant.OwnerID = &owner.ID
	require.NoError(t, db.Save(tenant).Error)

	svc := newOrderService(db)
	res, err := svc.Create(tenant.Slug, &CreateOrderReq{
		OrderType:     entity.ChannelPickup,
		CustomerName:  "Maria Silva",
		CustomerPhone: "11987654321",
		PaymentMethod: "pix",
		Items:         []OrderLineIn{{ProductID: product.ID, Quantity: 1}},
	}, noon())
	require.NoError(t, err)

	status, err := svc.Advance(owner.ID, tenant.ID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPreparing, status)

	// cancel is legal from preparing via the explicit panel button
	status, err = svc.SetStatus(owner.ID, tenant.ID, res.ID, entity.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, status)

	// a cancelled order is terminal
	_, err = svc.Advance(owner.ID, tenant.ID, res.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.BusinessRule, apperr.KindOf(err))

	// strangers cannot touch it
	stranger := &entity.User{Email: "x@example.com", Role: "owner"}
	require.NoError(t, db.Create(stranger).Error)
	_, err = svc.Advance(stranger.ID, tenant.ID, res.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}
