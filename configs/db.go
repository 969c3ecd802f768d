package configs

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/entity"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.User{}, &entity.Tenant{},
		&entity.Category{}, &entity.Product{},
		&entity.ProductOption{}, &entity.OptionItem{},
		&entity.ProductGroup{}, &entity.GroupItem{},
		&entity.Table{}, &entity.OperatingDay{}, &entity.DeliveryFee{},
		&entity.Coupon{}, &entity.CouponUsage{},
		&entity.Order{}, &entity.OrderItem{},
	)
}
