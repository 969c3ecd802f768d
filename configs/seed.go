package configs

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/RafaelMendes244/RMPedidos/entity"
)

// SeedAdmin creates the first admin account from env on an empty
// database. Safe to run on every boot.
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		logrus.Warn("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		logrus.WithField("email", email).Info("admin already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:    email,
		Password: string(hash),
		Name:     "Administrator",
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithField("email", email).Info("admin seeded")
	return nil
}

// SeedDemoTenant gives a fresh install something to click around in.
// Only runs when SEED_DEMO=true and the slug is free.
func SeedDemoTenant() error {
	if getEnv("SEED_DEMO", "") != "true" {
		return nil
	}
	db := DB()

	var count int64
	db.Model(&entity.Tenant{}).Where("slug = ?", "demo").Count(&count)
	if count > 0 {
		return nil
	}

	tenant := entity.Tenant{
		Name:     "Demo Restaurant",
		Slug:     "demo",
		PlanType: entity.PlanPro,
	}
	if err := db.Create(&tenant).Error; err != nil {
		return err
	}

	open, close := "18:00", "23:30"
	for day := 0; day <= 6; day++ {
		rule := entity.OperatingDay{TenantID: tenant.ID, Day: day, OpenTime: &open, CloseTime: &close}
		if err := db.Create(&rule).Error; err != nil {
			return err
		}
	}

	logrus.Info("demo tenant seeded")
	return nil
}
