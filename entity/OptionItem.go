package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OptionItem struct {
	gorm.Model
	Name  string          `gorm:"size:100;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`

	ProductOptionID uint          `json:"productOptionId"`
	ProductOption   ProductOption `json:"-"`
}
