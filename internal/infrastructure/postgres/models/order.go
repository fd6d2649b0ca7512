package models

import (
	"time"

	"github.com/tokoniaga/order-service/internal/domain"
)

type OrderModel struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	OrderUID string `gorm:"type:uuid;uniqueIndex"`

	UserID  uint64     `gorm:"not null;index"`
	User    UserModel  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	StoreID uint64     `gorm:"not null"`
	Store   StoreModel `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	Status        domain.OrderStatus   `gorm:"type:varchar(20);default:pending;index"`
	PaymentStatus domain.PaymentStatus `gorm:"type:varchar(20);default:unpaid;index"`
	PaymentMethod domain.PaymentMethod `gorm:"type:varchar(20)"`

	ShippingCost     int `gorm:"default:0"`
	ShippingCashback int `gorm:"default:0"`
	ServiceFee       int `gorm:"default:0"`
	AdditionalCost   int `gorm:"default:0"`
	CODValue         int `gorm:"default:0"`

	CourierCode  string `gorm:"type:varchar(10)"`
	ShippingType string `gorm:"type:varchar(20)"`

	OriginRO           int
	OriginAddress      string `gorm:"type:text"`
	DestinationRO      int
	DestinationAddress string `gorm:"type:text"`

	ShipmentOrderID *string `gorm:"type:varchar(20)"`
	ShipmentOrderNo *string `gorm:"type:varchar(50)"`

	IsArchived  bool `gorm:"default:false"`
	DeliveredAt *time.Time
	CanceledAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type OrderItemModel struct {
	ID        uint64       `gorm:"primaryKey;autoIncrement"`
	OrderID   uint64       `gorm:"not null;index"`
	ProductID uint64       `gorm:"not null"`
	Product   ProductModel `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	ProductName  string  `gorm:"type:varchar(255)"`
	ProductPrice float64 `gorm:"type:numeric(18,2)"`
	Qty          int     `gorm:"not null"`
}
