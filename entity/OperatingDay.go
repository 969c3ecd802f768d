package entity

import (
	"gorm.io/gorm"
)

// OperatingDay is one schedule rule per (tenant, weekday).
// Day uses the stored convention 0=Sunday .. 6=Saturday.
// OpenTime/CloseTime are "HH:MM" strings; nil means not set.
type OperatingDay struct {
	gorm.Model
	Day       int     `gorm:"not null;uniqueIndex:idx_operating_tenant_day" json:"day"`
	OpenTime  *string `gorm:"size:5" json:"openTime"`
	CloseTime *string `gorm:"size:5" json:"closeTime"`
	IsClosed  bool    `gorm:"not null;default:false" json:"isClosed"`

	TenantID uint   `gorm:"uniqueIndex:idx_operating_tenant_day" json:"tenantId"`
	Tenant   Tenant `json:"-"`
}
