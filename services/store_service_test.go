package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/pkg/apperr"
	"github.com/RafaelMendes244/RMPedidos/repository"
)

func TestPublicStatusManualOverrideWins(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	svc := NewStoreService(repository.NewTenantRepository(db), NewHoursService())

	status, err := svc.PublicStatus(tenant.Slug, noon())
	require.NoError(t, err)
	assert.True(t, status.IsOpen)
	assert.Equal(t, "operating_hours", status.Reason)

	tenant.ManualOverride = true
	require.NoError(t, db.Save(tenant).Error)

	status, err = svc.PublicStatus(tenant.Slug, noon())
	require.NoError(t, err)
	assert.False(t, status.IsOpen)
	assert.Equal(t, "manual_override", status.Reason)
	assert.Equal(t, "Temporarily closed", status.Message)
}

func TestToggleOpenFlipsOverride(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	owner := &entity.User{Email: "owner@example.com", Role: "owner"}
	require.NoError(t, db.Create(owner).Error)
	tenant.OwnerID = &owner.ID
	require.NoError(t, db.Save(tenant).Error)

	svc := NewStoreService(repository.NewTenantRepository(db), NewHoursService())

	updated, err := svc.ToggleOpen(owner.ID, tenant.ID, false)
	require.NoError(t, err)
	assert.True(t, updated.ManualOverride)

	updated, err = svc.ToggleOpen(owner.ID, tenant.ID, true)
	require.NoError(t, err)
	assert.False(t, updated.ManualOverride)

	stranger := &entity.User{Email: "x@example.com", Role: "owner"}
	require.NoError(t, db.Create(stranger).Error)
	_, err = svc.ToggleOpen(stranger.ID, tenant.ID, false)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestSaveHoursValidatesClock(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	owner := &entity.User{Email: "owner@example.com", Role: "owner"}
	require.NoError(t, db.Create(owner).Error)
	tenant.OwnerID = &owner.ID
	require.NoError(t, db.Save(tenant).Error)

	svc := NewStoreService(repository.NewTenantRepository(db), NewHoursService())

	bad := "25:00"
	err := svc.SaveHours(owner.ID, tenant.ID, []DayRuleIn{{Day: 1, Open: &bad}})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	open, close := "18:00", "23:00"
	require.NoError(t, svc.SaveHours(owner.ID, tenant.ID, []DayRuleIn{
		{Day: 1, Open: &open, Close: &close},
		{Day: 2, IsClosed: true},
	}))

	rules, err := repository.NewTenantRepository(db).OperatingDays(tenant.ID)
	require.NoError(t, err)
	byDay := map[int]entity.OperatingDay{}
	for _, r := range rules {
		byDay[r.Day] = r
	}
	assert.Equal(t, "18:00", *byDay[1].OpenTime)
	assert.True(t, byDay[2].IsClosed)
}

func TestSaveFeeNormalizesNeighborhood(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, entity.PlanPro)
	owner := &entity.User{Email: "owner@example.com", Role: "owner"}
	require.NoError(t, db.Create(owner).Error)
	tenant.OwnerID = &owner.ID
	require.NoError(t, db.Save(tenant).Error)

	svc := NewStoreService(repository.NewTenantRepository(db), NewHoursService())

	require.NoError(t, svc.SaveFee(owner.ID, tenant.ID, "São José", decimal.NewFromInt(5)))
	// same neighborhood spelled differently updates the same row
	require.NoError(t, svc.SaveFee(owner.ID, tenant.ID, "sao jose", decimal.NewFromInt(7)))

	fees, err := svc.ListFees(owner.ID, tenant.ID)
	require.NoError(t, err)
	require.Len(t, fees, 1)
	assert.Equal(t, "SAO JOSE", fees[0].Neighborhood)
	assert.True(t, fees[0].Fee.Equal(decimal.NewFromInt(7)))

	err = svc.SaveFee(owner.ID, tenant.ID, "", decimal.NewFromInt(5))
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	err = svc.SaveFee(owner.ID, tenant.ID, "Centro", decimal.NewFromInt(-1))
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}
