package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	PlanStarter = "starter"
	PlanPro     = "pro"
)

// trial window counted from tenant creation
const TrialDays = 14

type Tenant struct {
	gorm.Model
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	CustomDomain *string `gorm:"size:255;uniqueIndex" json:"customDomain,omitempty"`

	PlanType           string     `gorm:"size:20;not null;default:starter" json:"planType"`
	ValidUntil         *time.Time `json:"validUntil,omitempty"`
	SubscriptionActive bool       `gorm:"not null;default:true" json:"subscriptionActive"`

	// IsOpen is the coarse on/off switch; ManualOverride means the owner
	// forced the store closed regardless of schedule.
	IsOpen         bool `gorm:"not null;default:true" json:"isOpen"`
	ManualOverride bool `gorm:"not null;default:false" json:"manualOverride"`

	DeliveryMinutes  int  `gorm:"not null;default:45" json:"deliveryMinutes"`
	PickupMinutes    int  `gorm:"not null;default:25" json:"pickupMinutes"`
	ShowDeliveryTime bool `gorm:"not null;default:true" json:"showDeliveryTime"`
	ShowPickupTime   bool `gorm:"not null;default:true" json:"showPickupTime"`

	PhoneWhatsapp string `gorm:"size:20" json:"phoneWhatsapp"`
	Address       string `json:"address"`
	PrimaryColor  string `gorm:"size:7;default:#ea580c" json:"primaryColor"`

	PixKey  string `gorm:"size:100" json:"pixKey"`
	PixName string `gorm:"size:100" json:"pixName"`
	PixCity string `gorm:"size:100" json:"pixCity"`

	OwnerID *uint `json:"ownerId,omitempty"`
	Owner   *User `json:"-"`

	Categories    []Category     `json:"-"`
	Products      []Product      `json:"-"`
	Tables        []Table        `json:"-"`
	OperatingDays []OperatingDay `json:"-"`
	DeliveryFees  []DeliveryFee  `json:"-"`
	Coupons       []Coupon       `json:"-"`
	Orders        []Order        `json:"-"`
}

// IsTrial reports whether the tenant is still inside the free trial window.
func (t *Tenant) IsTrial(now time.Time) bool {
	return now.Sub(t.CreatedAt) < TrialDays*24*time.Hour
}

// HasActiveSubscription: cancelled beats everything, then a future
// valid-until date counts as paid, otherwise the trial window decides.
func (t *Tenant) HasActiveSubscription(now time.Time) bool {
	if !t.SubscriptionActive {
		return false
	}
	if t.ValidUntil != nil && !t.ValidUntil.Before(truncateToDay(now)) {
		return true
	}
	return t.IsTrial(now)
}

func (t *Tenant) CanAccessOrders(now time.Time) bool {
	return t.HasActiveSubscription(now) && (t.IsTrial(now) || t.PlanType == PlanPro)
}

func (t *Tenant) CanAccessReports(now time.Time) bool {
	return t.CanAccessOrders(now)
}

func (t *Tenant) CanAccessCoupons(now time.Time) bool {
	return t.CanAccessOrders(now)
}

func truncateToDay(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}
