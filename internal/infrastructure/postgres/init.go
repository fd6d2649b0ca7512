package postgres

import (
	"log"

	"github.com/tokoniaga/order-service/internal/config"
	"github.com/tokoniaga/order-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.OrderConfig) *gorm.DB {
	dsn := cfg.OrderDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.UserModel{},
		&models.ShippingAddressModel{},
		&models.StoreModel{},
		&models.CourierModel{},
		&models.ProductModel{},
		&models.CartModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.CheckoutSessionModel{},
	)

	return db
}
