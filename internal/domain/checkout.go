package domain

import (
	"strings"
	"time"
)

// CheckoutSession is a short-lived reservation binding the user's chosen cart
// rows, destination and store until a shipping quote is paid for. It is
// immutable after creation; redemption consumes it exactly once.
type CheckoutSession struct {
	ID            string
	UserID        uint64
	CartIDs       []uint64
	DestinationID uint64
	StoreID       uint64
	CreatedAt     time.Time
	ExpiresAt     time.Time
	ConsumedAt    *time.Time
}

// Expired is a passive time comparison; there is no eviction job.
func (s *CheckoutSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// ShippingQuote is one priced shipping option from the rate provider.
type ShippingQuote struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Service     string `json:"service"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	ETD         string `json:"etd"`
}

type QuoteRequest struct {
	OriginRO      int
	DestinationRO int
	Weight        int
	Courier       string
}

type Product struct {
	ID     uint64
	Name   string
	Weight float64
	Price  float64
	Stock  int
}

type Cart struct {
	ID        uint64
	UserID    uint64
	ProductID uint64
	Qty       int
	Product   *Product
}

type Store struct {
	ID                uint64
	BrandName         string
	Name              string
	Email             string
	PhoneNumber       string
	ShippingAddressID uint64
	IsActive          bool

	ShippingAddress *ShippingAddress
}

// CleanPhoneNumber strips the "+" prefix the logistics API rejects.
func (s *Store) CleanPhoneNumber() string {
	return strings.ReplaceAll(s.PhoneNumber, "+", "")
}

type ShippingAddress struct {
	ID           uint64
	UserID       uint64
	Street       string
	DistrictName string
	CityName     string
	ZipCode      string
	DistrictRO   int
	IsDefault    bool
}

// FormattedAddress joins the non-empty address parts into the single-line
// form used on orders and shipment documents.
func (a *ShippingAddress) FormattedAddress() string {
	parts := []string{}
	for _, p := range []string{a.Street, "Kec. " + a.DistrictName, a.CityName, a.ZipCode} {
		if p != "" && p != "Kec. " {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type Courier struct {
	ID       uint64
	Code     string
	Name     string
	IsActive bool
}

type User struct {
	ID          uint64
	Username    string
	Email       string
	PhoneNumber string
}

func (u *User) CleanPhoneNumber() string {
	return strings.ReplaceAll(u.PhoneNumber, "+", "")
}
