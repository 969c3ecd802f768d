package entity

import (
	"gorm.io/gorm"
)

const (
	OptionTypeRadio    = "radio"    // pick exactly one
	OptionTypeCheckbox = "checkbox" // pick up to MaxQuantity
)

// ProductOption is one option group attached to a product
// (e.g. "Extras", "Meat doneness").
type ProductOption struct {
	gorm.Model
	Title       string `gorm:"size:100;not null" json:"title"`
	Type        string `gorm:"size:20;not null;default:checkbox" json:"type"`
	Required    bool   `gorm:"not null;default:false" json:"required"`
	MaxQuantity int    `gorm:"not null;default:1" json:"maxQuantity"`

	ProductID uint    `json:"productId"`
	Product   Product `json:"-"`

	// group this option was imported from, if any
	GroupID *uint         `json:"groupId,omitempty"`
	Group   *ProductGroup `json:"-"`

	Items []OptionItem `json:"items"`
}
