package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is the historical receipt line: product name and the unit
// price actually charged (base + selected options) are snapshotted at
// order time and never touched again, whatever happens to the catalog.
type OrderItem struct {
	gorm.Model
	ProductName string          `gorm:"size:200;not null" json:"productName"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	OptionsText string          `json:"optionsText"` // e.g. "Bacon, Cheddar (2x)"
	Observation string          `gorm:"size:200" json:"observation"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`
}
