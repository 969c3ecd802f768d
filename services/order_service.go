package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/pkg/apperr"
	"github.com/RafaelMendes244/RMPedidos/repository"
)

// OrderNotifier is told about committed orders. Implementations must
// never block: notification is a post-commit side effect and cannot be
// allowed to delay or roll back anything.
type OrderNotifier interface {
	NotifyNewOrder(tenantID uint, order *entity.Order)
}

type OrderService struct {
	DB         *gorm.DB
	Repo       *repository.OrderRepository
	TenantRepo *repository.TenantRepository
	CouponRepo *repository.CouponRepository

	Pricing *PricingService
	Fees    *FeeService
	Hours   *HoursService
	Coupons *CouponService

	Notifier OrderNotifier // optional
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	tenantRepo *repository.TenantRepository,
	couponRepo *repository.CouponRepository,
	pricing *PricingService,
	fees *FeeService,
	hours *HoursService,
	coupons *CouponService,
) *OrderService {
	return &OrderService{
		DB:         db,
		Repo:       repo,
		TenantRepo: tenantRepo,
		CouponRepo: couponRepo,
		Pricing:    pricing,
		Fees:       fees,
		Hours:      hours,
		Coupons:    coupons,
	}
}

// ----- DTOs from Controller -----

// Option labels come in as objects because the storefront sends
// {name, price}; only the name is ever decoded. There is deliberately
// no price or unit-price field anywhere in these structs.
type OrderOptionIn struct {
	Name string `json:"name"`
}

type OrderLineIn struct {
	ProductID   uint            `json:"productId" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required"`
	Options     []OrderOptionIn `json:"options"`
	Observation string          `json:"observation"`
}

type OrderAddressIn struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
}

type CreateOrderReq struct {
	OrderType     string          `json:"orderType"`
	CustomerName  string          `json:"customerName" binding:"required"`
	CustomerPhone string          `json:"customerPhone" binding:"required"`
	Address       *OrderAddressIn `json:"address"`
	Items         []OrderLineIn   `json:"items" binding:"required,min=1"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	CouponCode    string          `json:"couponCode"`
	TableNumber   int             `json:"tableNumber"`
	Observation   string          `json:"observation"`
}

type CreateOrderRes struct {
	ID        uint            `json:"id"`
	OrderType string          `json:"orderType"`
	Total     decimal.Decimal `json:"total"`
}

// Create runs the whole pricing pipeline for one submission:
// validate -> open check -> price lines -> delivery fee -> coupon ->
// atomic commit. Any failure before commit leaves zero rows behind.
func (s *OrderService) Create(slug string, req *CreateOrderReq, now time.Time) (*CreateOrderRes, error) {
	tenant, err := s.TenantRepo.FindBySlug(slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Store not found")
		}
		return nil, apperr.Wrap(apperr.Unexpected, "could not load store", err)
	}

	// --- open checks, each with its own message ---
	if !tenant.IsOpen {
		return nil, apperr.New(apperr.BusinessRule, "The store is temporarily closed!")
	}
	if tenant.ManualOverride {
		return nil, apperr.New(apperr.BusinessRule, "The store closed early today. Please come back later!")
	}
	rules, err := s.TenantRepo.OperatingDays(tenant.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not load schedule", err)
	}
	if open, msg := s.Hours.IsOpen(rules, now); !open {
		return nil, apperr.New(apperr.BusinessRule, "Outside opening hours! "+msg)
	}

	// --- structural validation ---
	name, err := sanitizeCustomerName(req.CustomerName)
	if err != nil {
		return nil, err
	}
	phone, err := sanitizePhone(req.CustomerPhone)
	if err != nil {
		return nil, err
	}
	method, err := validatePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = entity.ChannelDelivery
	}
	// a table number always wins over whatever channel the client claimed
	if req.TableNumber > 0 {
		orderType = entity.ChannelTable
	}
	switch orderType {
	case entity.ChannelDelivery, entity.ChannelPickup, entity.ChannelTable:
	default:
		return nil, apperr.New(apperr.Validation, "Invalid order type")
	}

	var table *entity.Table
	if orderType == entity.ChannelTable {
		table, err = s.TenantRepo.FindActiveTable(tenant.ID, req.TableNumber)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperr.New(apperr.BusinessRule, "Table not found or inactive. Please call the staff.")
			}
			return nil, apperr.Wrap(apperr.Unexpected, "could not load table", err)
		}
	}

	var addr *cleanAddress
	if orderType == entity.ChannelDelivery {
		addr, err = sanitizeAddress(req.Address)
		if err != nil {
			return nil, err
		}
	}

	// --- price every line from the catalog, never from the client ---
	itemsSubtotal := decimal.Zero
	lines := make([]*PricedLine, 0, len(req.Items))
	for _, line := range req.Items {
		names := make([]string, 0, len(line.Options))
		for _, opt := range line.Options {
			names = append(names, opt.Name)
		}
		priced, err := s.Pricing.PriceLine(tenant.ID, line.ProductID, names, line.Quantity, line.Observation)
		if err != nil {
			return nil, err // one bad line rejects the whole order
		}
		itemsSubtotal = itemsSubtotal.Add(priced.UnitPrice.Mul(decimal.NewFromInt(int64(priced.Quantity))))
		lines = append(lines, priced)
	}

	neighborhood := ""
	if addr != nil {
		neighborhood = addr.Neighborhood
	}
	deliveryFee, err := s.Fees.ResolveFee(tenant.ID, orderType, neighborhood)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not resolve delivery fee", err)
	}

	// Coupon pre-check outside the transaction. A bad code is silent:
	// the coupon is dropped, the order goes on. Only the final decision
	// happens under the row lock at commit time.
	couponCode := ""
	if req.CouponCode != "" {
		if coupon, err := s.CouponRepo.FindByCode(tenant.ID, req.CouponCode); err == nil {
			if ok, _ := s.Coupons.ValidateCoupon(coupon, now); ok && s.meetsMinimum(coupon, itemsSubtotal) {
				couponCode = req.CouponCode
			}
		}
	}

	initialStatus := entity.StatusPending
	if tenant.PlanType == entity.PlanStarter {
		// starter has no live kitchen workflow; orders land completed
		initialStatus = entity.StatusCompleted
	}

	var created entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		discount := decimal.Zero
		var couponID *uint

		if couponCode != "" {
			coupon, err := s.CouponRepo.FindByCodeForUpdate(tx, tenant.ID, couponCode)
			switch {
			case err == gorm.ErrRecordNotFound:
				// deleted since the pre-check; proceed without it
			case err != nil:
				return err
			default:
				// re-validate under the lock: another order may have
				// burned the last redemption between pre-check and here
				if ok, _ := s.Coupons.ValidateCoupon(coupon, now); ok && s.meetsMinimum(coupon, itemsSubtotal) {
					_, discount = s.Coupons.ApplyDiscount(coupon, itemsSubtotal)
					if err := s.CouponRepo.IncrementUsage(tx, coupon.ID); err != nil {
						return err
					}
					id := coupon.ID
					couponID = &id
				}
			}
		}

		total := itemsSubtotal.Add(deliveryFee).Sub(discount)
		if total.IsNegative() {
			total = decimal.Zero
		}

		order := entity.Order{
			TenantID:      tenant.ID,
			CustomerName:  name,
			CustomerPhone: phone,
			OrderType:     orderType,
			PaymentMethod: method,
			TotalValue:    total,
			DeliveryFee:   deliveryFee,
			DiscountValue: discount,
			CouponID:      couponID,
			Status:        initialStatus,
			Observation:   sanitizeObservation(req.Observation),
		}
		if table != nil {
			order.TableID = &table.ID
		}
		if addr != nil {
			order.AddressCEP = addr.CEP
			order.AddressStreet = addr.Street
			order.AddressNumber = addr.Number
			order.AddressNeighborhood = addr.Neighborhood
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, line := range lines {
			item := entity.OrderItem{
				OrderID:     order.ID,
				ProductName: line.ProductName,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				OptionsText: line.OptionsText,
				Observation: line.Observation,
			}
			if err := s.Repo.CreateOrderItem(tx, &item); err != nil {
				return err
			}
		}

		if couponID != nil {
			usage := entity.CouponUsage{
				CouponID:        *couponID,
				OrderID:         order.ID,
				DiscountApplied: discount,
			}
			if err := s.CouponRepo.CreateUsage(tx, &usage); err != nil {
				return err
			}
		}

		created = order
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"tenant": tenant.Slug,
			"type":   orderType,
		}).WithError(err).Error("order commit failed")
		return nil, apperr.Wrap(apperr.Unexpected, "Could not process your order. Please try again later.", err)
	}

	// fire-and-forget: the commit already happened, a slow or dead
	// notifier must not matter
	if s.Notifier != nil {
		s.Notifier.NotifyNewOrder(tenant.ID, &created)
	}

	return &CreateOrderRes{ID: created.ID, OrderType: created.OrderType, Total: created.TotalValue}, nil
}

func (s *OrderService) meetsMinimum(coupon *entity.Coupon, itemsSubtotal decimal.Decimal) bool {
	// the minimum is checked against the items subtotal, before the
	// delivery fee enters the math
	return !coupon.MinimumOrderValue.IsPositive() || !itemsSubtotal.LessThan(coupon.MinimumOrderValue)
}

// ----- Panel reads -----

type OrderListOut struct {
	Items []repository.OrderSummary `json:"items"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}

func (s *OrderService) ListForTenant(userID, tenantID uint, status string, page, limit int) (*OrderListOut, error) {
	if err := s.ownerCheck(tenantID, userID); err != nil {
		return nil, err
	}
	items, total, err := s.Repo.ListForTenant(tenantID, status, page, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not list orders", err)
	}
	return &OrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) DetailForTenant(userID, tenantID, orderID uint) (*entity.Order, error) {
	if err := s.ownerCheck(tenantID, userID); err != nil {
		return nil, err
	}
	o, err := s.Repo.GetForTenant(tenantID, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Order not found")
		}
		return nil, apperr.Wrap(apperr.Unexpected, "could not load order", err)
	}
	return o, nil
}

func (s *OrderService) MarkPrinted(userID, tenantID, orderID uint) error {
	if err := s.ownerCheck(tenantID, userID); err != nil {
		return err
	}
	if err := s.Repo.MarkPrinted(tenantID, orderID); err != nil {
		return apperr.Wrap(apperr.Unexpected, "could not mark order printed", err)
	}
	return nil
}

// HistoryByPhone is the public customer history: sanitized phone in,
// that phone's past orders out.
func (s *OrderService) HistoryByPhone(slug, phone string) ([]entity.Order, error) {
	tenant, err := s.TenantRepo.FindBySlug(slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Store not found")
		}
		return nil, apperr.Wrap(apperr.Unexpected, "could not load store", err)
	}
	clean, err := sanitizePhone(phone)
	if err != nil {
		return nil, err
	}
	orders, err := s.Repo.HistoryByPhone(tenant.ID, clean, 20)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not load history", err)
	}
	return orders, nil
}

// ownerCheck guards the panel surface: the caller must own the store
// and the plan (or trial) must include live order management.
func (s *OrderService) ownerCheck(tenantID, userID uint) error {
	ok, err := s.TenantRepo.IsOwnedBy(tenantID, userID)
	if err != nil {
		return apperr.Wrap(apperr.Unexpected, "could not verify store ownership", err)
	}
	if !ok {
		return apperr.New(apperr.Forbidden, "You do not manage this store")
	}
	var tenant entity.Tenant
	if err := s.DB.First(&tenant, tenantID).Error; err != nil {
		return apperr.Wrap(apperr.Unexpected, "could not load store", err)
	}
	if !tenant.CanAccessOrders(time.Now()) {
		return apperr.New(apperr.Forbidden, "Order management requires the Pro plan")
	}
	return nil
}
