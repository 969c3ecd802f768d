package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/pkg/apperr"
	"github.com/RafaelMendes244/RMPedidos/repository"
)

// StoreService groups the storefront-status and settings operations:
// public open/closed display, the manual open/close toggle, schedule
// and delivery-fee management, tables.
type StoreService struct {
	TenantRepo *repository.TenantRepository
	Hours      *HoursService
}

func NewStoreService(tenantRepo *repository.TenantRepository, hours *HoursService) *StoreService {
	return &StoreService{TenantRepo: tenantRepo, Hours: hours}
}

type StoreStatus struct {
	IsOpen  bool   `json:"isOpen"`
	Reason  string `json:"reason"` // manual_override | operating_hours
	Message string `json:"message"`
}

// PublicStatus is what the storefront shows the customer. The manual
// override wins before the schedule is even consulted, so display and
// order acceptance can never disagree.
func (s *StoreService) PublicStatus(slug string, now time.Time) (*StoreStatus, error) {
	tenant, err := s.TenantRepo.FindBySlug(slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Store not found")
		}
		return nil, apperr.Wrap(apperr.Unexpected, "could not load store", err)
	}

	if tenant.ManualOverride {
		return &StoreStatus{IsOpen: false, Reason: "manual_override", Message: "Temporarily closed"}, nil
	}

	rules, err := s.TenantRepo.OperatingDays(tenant.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not load schedule", err)
	}
	open, msg := s.Hours.IsOpen(rules, now)
	return &StoreStatus{IsOpen: open, Reason: "operating_hours", Message: msg}, nil
}

// ToggleOpen writes the manual override: asking to open clears the
// override (back to schedule control), asking to close sets it.
func (s *StoreService) ToggleOpen(userID, tenantID uint, wantOpen bool) (*entity.Tenant, error) {
	tenant, err := s.ownedTenant(userID, tenantID)
	if err != nil {
		return nil, err
	}
	tenant.ManualOverride = !wantOpen
	if err := s.TenantRepo.Save(tenant); err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not save store", err)
	}
	return tenant, nil
}

// CanAccessFeed gates the live order feed: admins see every store,
// owners only their own. Implements ws.FeedAccess.
func (s *StoreService) CanAccessFeed(userID uint, role string, tenantID uint) (bool, error) {
	if role == "admin" {
		return true, nil
	}
	return s.TenantRepo.IsOwnedBy(tenantID, userID)
}

// ---------------- Schedule ----------------

type DayRuleIn struct {
	Day      int     `json:"day" binding:"min=0,max=6"`
	Open     *string `json:"open"`
	Close    *string `json:"close"`
	IsClosed bool    `json:"closed"`
}

// SaveHours bulk-upserts the weekly rules, one per weekday.
func (s *StoreService) SaveHours(userID, tenantID uint, rules []DayRuleIn) error {
	if _, err := s.ownedTenant(userID, tenantID); err != nil {
		return err
	}
	for _, r := range rules {
		if r.Day < 0 || r.Day > 6 {
			return apperr.New(apperr.Validation, "Day must be between 0 (Sunday) and 6 (Saturday)")
		}
		open := emptyToNil(r.Open)
		close := emptyToNil(r.Close)
		if open != nil {
			if _, ok := parseClock(*open); !ok {
				return apperr.New(apperr.Validation, "Opening time must be HH:MM")
			}
		}
		if close != nil {
			if _, ok := parseClock(*close); !ok {
				return apperr.New(apperr.Validation, "Closing time must be HH:MM")
			}
		}
		if err := s.TenantRepo.UpsertOperatingDay(tenantID, r.Day, open, close, r.IsClosed); err != nil {
			return apperr.Wrap(apperr.Unexpected, "could not save schedule", err)
		}
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// ---------------- Delivery fees ----------------

func (s *StoreService) ListFees(userID, tenantID uint) ([]entity.DeliveryFee, error) {
	if _, err := s.ownedTenant(userID, tenantID); err != nil {
		return nil, err
	}
	fees, err := s.TenantRepo.DeliveryFees(tenantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not list delivery fees", err)
	}
	return fees, nil
}

func (s *StoreService) SaveFee(userID, tenantID uint, neighborhood string, fee decimal.Decimal) error {
	if _, err := s.ownedTenant(userID, tenantID); err != nil {
		return err
	}
	if neighborhood == "" {
		return apperr.New(apperr.Validation, "Neighborhood is required")
	}
	if fee.IsNegative() {
		return apperr.New(apperr.Validation, "Fee cannot be negative")
	}
	if err := s.TenantRepo.UpsertDeliveryFee(tenantID, neighborhood, fee); err != nil {
		return apperr.Wrap(apperr.Unexpected, "could not save delivery fee", err)
	}
	return nil
}

func (s *StoreService) DeleteFee(userID, tenantID, feeID uint) error {
	if _, err := s.ownedTenant(userID, tenantID); err != nil {
		return err
	}
	if err := s.TenantRepo.DeleteDeliveryFee(tenantID, feeID); err != nil {
		return apperr.Wrap(apperr.Unexpected, "could not delete delivery fee", err)
	}
	return nil
}

// ---------------- Tables ----------------

func (s *StoreService) ListTables(userID, tenantID uint) ([]entity.Table, error) {
	if _, err := s.ownedTenant(userID, tenantID); err != nil {
		return nil, err
	}
	tables, err := s.TenantRepo.Tables(tenantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not list tables", err)
	}
	return tables, nil
}

func (s *StoreService) CreateTable(userID, tenantID uint, number, capacity int) (*entity.Table, error) {
	if _, err := s.ownedTenant(userID, tenantID); err != nil {
		return nil, err
	}
	if number <= 0 {
		return nil, apperr.New(apperr.Validation, "Table number must be positive")
	}
	if capacity <= 0 {
		capacity = 4
	}
	t := &entity.Table{TenantID: tenantID, Number: number, Capacity: capacity, IsActive: true}
	if err := s.TenantRepo.CreateTable(t); err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not create table", err)
	}
	return t, nil
}

func (s *StoreService) ToggleTable(userID, tenantID, tableID uint) (bool, error) {
	if _, err := s.ownedTenant(userID, tenantID); err != nil {
		return false, err
	}
	active, err := s.TenantRepo.ToggleTable(tenantID, tableID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, apperr.New(apperr.NotFound, "Table not found")
		}
		return false, apperr.Wrap(apperr.Unexpected, "could not toggle table", err)
	}
	return active, nil
}

func (s *StoreService) ownedTenant(userID, tenantID uint) (*entity.Tenant, error) {
	ok, err := s.TenantRepo.IsOwnedBy(tenantID, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not verify store ownership", err)
	}
	if !ok {
		return nil, apperr.New(apperr.Forbidden, "You do not manage this store")
	}
	var tenant entity.Tenant
	if err := s.TenantRepo.DB.First(&tenant, tenantID).Error; err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not load store", err)
	}
	return &tenant, nil
}
