package models

import "time"

type CheckoutSessionModel struct {
	ID            string               `gorm:"primaryKey;type:varchar(36)"`
	UserID        uint64               `gorm:"not null;index"`
	User          UserModel            `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CartIDsJSON   string               `gorm:"column:cart_ids;type:jsonb"`
	DestinationID uint64               `gorm:"not null"`
	Destination   ShippingAddressModel `gorm:"foreignKey:DestinationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	StoreID       uint64               `gorm:"not null"`
	Store         StoreModel           `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt     time.Time
	ExpiresAt     time.Time  `gorm:"index"`
	ConsumedAt    *time.Time
}
