package models

import "time"

type UserModel struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	Username    string `gorm:"type:varchar(150)"`
	Email       string `gorm:"type:varchar(255);uniqueIndex"`
	PhoneNumber string `gorm:"type:varchar(20)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProductModel struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement"`
	Name      string  `gorm:"type:varchar(255)"`
	Weight    float64 `gorm:"type:numeric(10,2)"`
	Price     float64 `gorm:"type:numeric(18,2)"`
	Stock     int     `gorm:"not null;check:stock >= 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartModel struct {
	ID        uint64       `gorm:"primaryKey;autoIncrement"`
	UserID    uint64       `gorm:"not null;uniqueIndex:idx_user_product"`
	User      UserModel    `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ProductID uint64       `gorm:"not null;uniqueIndex:idx_user_product"`
	Product   ProductModel `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Qty       int          `gorm:"default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ShippingAddressModel struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	UserID       uint64    `gorm:"not null;index"`
	User         UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Street       string    `gorm:"type:varchar(255)"`
	DistrictName string    `gorm:"type:varchar(100)"`
	CityName     string    `gorm:"type:varchar(100)"`
	ZipCode      string    `gorm:"type:varchar(10)"`
	DistrictRO   int       `gorm:"not null"`
	IsDefault    bool      `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type StoreModel struct {
	ID                uint64               `gorm:"primaryKey;autoIncrement"`
	BrandName         string               `gorm:"type:varchar(255)"`
	Name              string               `gorm:"type:varchar(255)"`
	Email             string               `gorm:"type:varchar(255);uniqueIndex"`
	PhoneNumber       string               `gorm:"type:varchar(20)"`
	ShippingAddressID uint64               `gorm:"not null"`
	ShippingAddress   ShippingAddressModel `gorm:"foreignKey:ShippingAddressID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	IsActive          bool                 `gorm:"default:true;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CourierModel struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Code      string `gorm:"type:varchar(20);uniqueIndex"`
	Name      string `gorm:"type:varchar(50)"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
