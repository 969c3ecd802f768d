package repository

import (
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/entity"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// TenantsOf lists the stores this panel user owns.
func (r *UserRepository) TenantsOf(userID uint) ([]entity.Tenant, error) {
	var tenants []entity.Tenant
	err := r.DB.Where("owner_id = ?", userID).Find(&tenants).Error
	return tenants, err
}
