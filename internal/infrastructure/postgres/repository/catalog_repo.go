package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tokoniaga/order-service/internal/domain"
	"github.com/tokoniaga/order-service/internal/infrastructure/postgres/mappers"
	"github.com/tokoniaga/order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCartRepository struct {
	DB *gorm.DB
}

func NewDefaultCartRepository(db *gorm.DB) *DefaultCartRepository {
	return &DefaultCartRepository{DB: db}
}

func (r *DefaultCartRepository) GetByIDsForUser(ctx context.Context, userID uint64, ids []uint64) ([]*domain.Cart, error) {
	var cartModels []models.CartModel
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND id IN ?", userID, ids).
		Order("id").
		Find(&cartModels).Error
	if err != nil {
		return nil, fmt.Errorf("find carts: %w", err)
	}

	carts := make([]*domain.Cart, len(cartModels))
	for i := range cartModels {
		carts[i] = mappers.ToDomainCart(&cartModels[i])
	}
	return carts, nil
}

type DefaultStoreRepository struct {
	DB *gorm.DB
}

func NewDefaultStoreRepository(db *gorm.DB) *DefaultStoreRepository {
	return &DefaultStoreRepository{DB: db}
}

func (r *DefaultStoreRepository) GetActive(ctx context.Context) (*domain.Store, error) {
	var storeModel models.StoreModel
	err := r.DB.WithContext(ctx).
		Preload("ShippingAddress").
		First(&storeModel, "is_active = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrStoreUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("find active store: %w", err)
	}

	return mappers.ToDomainStore(&storeModel), nil
}

func (r *DefaultStoreRepository) GetByID(ctx context.Context, id uint64) (*domain.Store, error) {
	var storeModel models.StoreModel
	err := r.DB.WithContext(ctx).
		Preload("ShippingAddress").
		First(&storeModel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrStoreUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("find store %d: %w", id, err)
	}

	return mappers.ToDomainStore(&storeModel), nil
}

type DefaultShippingAddressRepository struct {
	DB *gorm.DB
}

func NewDefaultShippingAddressRepository(db *gorm.DB) *DefaultShippingAddressRepository {
	return &DefaultShippingAddressRepository{DB: db}
}

func (r *DefaultShippingAddressRepository) GetForUser(ctx context.Context, userID, id uint64) (*domain.ShippingAddress, error) {
	var addressModel models.ShippingAddressModel
	err := r.DB.WithContext(ctx).
		First(&addressModel, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find address %d: %w", id, err)
	}

	return mappers.ToDomainAddress(&addressModel), nil
}

func (r *DefaultShippingAddressRepository) GetDefault(ctx context.Context, userID uint64) (*domain.ShippingAddress, error) {
	var addressModel models.ShippingAddressModel
	err := r.DB.WithContext(ctx).
		First(&addressModel, "user_id = ? AND is_default = ?", userID, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find default address: %w", err)
	}

	return mappers.ToDomainAddress(&addressModel), nil
}

type DefaultCourierRepository struct {
	DB *gorm.DB
}

func NewDefaultCourierRepository(db *gorm.DB) *DefaultCourierRepository {
	return &DefaultCourierRepository{DB: db}
}

func (r *DefaultCourierRepository) ActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	err := r.DB.WithContext(ctx).
		Model(&models.CourierModel{}).
		Where("is_active = ?", true).
		Order("id").
		Pluck("code", &codes).Error
	if err != nil {
		return nil, fmt.Errorf("find active couriers: %w", err)
	}
	return codes, nil
}

type DefaultUserRepository struct {
	DB *gorm.DB
}

func NewDefaultUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{DB: db}
}

func (r *DefaultUserRepository) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	var userModel models.UserModel
	err := r.DB.WithContext(ctx).First(&userModel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}

	return mappers.ToDomainUser(&userModel), nil
}
