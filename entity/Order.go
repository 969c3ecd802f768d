package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ChannelDelivery = "delivery"
	ChannelPickup   = "pickup"
	ChannelTable    = "table"
)

// order lifecycle (status names kept from the panel UI)
const (
	StatusPending        = "pendente"
	StatusPreparing      = "em_preparo"
	StatusOutForDelivery = "saiu_entrega"
	StatusCompleted      = "concluido"
	StatusCancelled      = "cancelado"
)

// Order financial fields are written once at creation and never
// recomputed; the line items are the receipt.
type Order struct {
	gorm.Model
	CustomerName  string `gorm:"size:100;not null" json:"customerName"`
	CustomerPhone string `gorm:"size:20;not null" json:"customerPhone"`

	OrderType string `gorm:"size:20;not null;default:delivery" json:"orderType"`

	// address block, empty unless delivery
	AddressCEP          string `gorm:"size:10" json:"addressCep"`
	AddressStreet       string `gorm:"size:200" json:"addressStreet"`
	AddressNumber       string `gorm:"size:20" json:"addressNumber"`
	AddressNeighborhood string `gorm:"size:100" json:"addressNeighborhood"`

	PaymentMethod string          `gorm:"size:50;not null" json:"paymentMethod"`
	TotalValue    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalValue"`
	DeliveryFee   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"deliveryFee"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discountValue"`

	Status      string `gorm:"size:20;not null;default:pendente" json:"status"`
	IsPrinted   bool   `gorm:"not null;default:false" json:"isPrinted"`
	Observation string `json:"observation"`

	TenantID uint   `json:"tenantId"`
	Tenant   Tenant `json:"-"`

	TableID *uint  `json:"tableId,omitempty"`
	Table   *Table `json:"-"`

	CouponID *uint   `json:"couponId,omitempty"`
	Coupon   *Coupon `json:"-"`

	Items []OrderItem `json:"-"` // preload on detail only
}
