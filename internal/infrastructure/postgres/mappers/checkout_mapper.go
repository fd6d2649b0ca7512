package mappers

import (
	"encoding/json"

	"github.com/tokoniaga/order-service/internal/domain"
	"github.com/tokoniaga/order-service/internal/infrastructure/postgres/models"
)

func ToDomainSession(model *models.CheckoutSessionModel) (*domain.CheckoutSession, error) {
	var cartIDs []uint64
	if model.CartIDsJSON != "" {
		if err := json.Unmarshal([]byte(model.CartIDsJSON), &cartIDs); err != nil {
			return nil, err
		}
	}
	return &domain.CheckoutSession{
		ID:            model.ID,
		UserID:        model.UserID,
		CartIDs:       cartIDs,
		DestinationID: model.DestinationID,
		StoreID:       model.StoreID,
		CreatedAt:     model.CreatedAt,
		ExpiresAt:     model.ExpiresAt,
		ConsumedAt:    model.ConsumedAt,
	}, nil
}

func ToGORMSession(session *domain.CheckoutSession) (*models.CheckoutSessionModel, error) {
	cartIDs, err := json.Marshal(session.CartIDs)
	if err != nil {
		return nil, err
	}
	return &models.CheckoutSessionModel{
		ID:            session.ID,
		UserID:        session.UserID,
		CartIDsJSON:   string(cartIDs),
		DestinationID: session.DestinationID,
		StoreID:       session.StoreID,
		CreatedAt:     session.CreatedAt,
		ExpiresAt:     session.ExpiresAt,
		ConsumedAt:    session.ConsumedAt,
	}, nil
}

func ToDomainProduct(model *models.ProductModel) *domain.Product {
	return &domain.Product{
		ID:     model.ID,
		Name:   model.Name,
		Weight: model.Weight,
		Price:  model.Price,
		Stock:  model.Stock,
	}
}

func ToDomainCart(model *models.CartModel) *domain.Cart {
	cart := &domain.Cart{
		ID:        model.ID,
		UserID:    model.UserID,
		ProductID: model.ProductID,
		Qty:       model.Qty,
	}
	if model.Product.ID != 0 {
		cart.Product = ToDomainProduct(&model.Product)
	}
	return cart
}

func ToDomainAddress(model *models.ShippingAddressModel) *domain.ShippingAddress {
	return &domain.ShippingAddress{
		ID:           model.ID,
		UserID:       model.UserID,
		Street:       model.Street,
		DistrictName: model.DistrictName,
		CityName:     model.CityName,
		ZipCode:      model.ZipCode,
		DistrictRO:   model.DistrictRO,
		IsDefault:    model.IsDefault,
	}
}

func ToDomainStore(model *models.StoreModel) *domain.Store {
	store := &domain.Store{
		ID:                model.ID,
		BrandName:         model.BrandName,
		Name:              model.Name,
		Email:             model.Email,
		PhoneNumber:       model.PhoneNumber,
		ShippingAddressID: model.ShippingAddressID,
		IsActive:          model.IsActive,
	}
	if model.ShippingAddress.ID != 0 {
		store.ShippingAddress = ToDomainAddress(&model.ShippingAddress)
	}
	return store
}

func ToDomainUser(model *models.UserModel) *domain.User {
	return &domain.User{
		ID:          model.ID,
		Username:    model.Username,
		Email:       model.Email,
		PhoneNumber: model.PhoneNumber,
	}
}
