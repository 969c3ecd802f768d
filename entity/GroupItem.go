package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GroupItem struct {
	gorm.Model
	Name  string          `gorm:"size:100;not null;uniqueIndex:idx_group_item_name" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`

	ProductGroupID uint         `gorm:"uniqueIndex:idx_group_item_name" json:"productGroupId"`
	ProductGroup   ProductGroup `json:"-"`
}
