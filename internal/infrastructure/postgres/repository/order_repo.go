package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tokoniaga/order-service/internal/domain"
	"github.com/tokoniaga/order-service/internal/infrastructure/postgres/mappers"
	"github.com/tokoniaga/order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	order.NormalizeCOD()

	orderModel := mappers.ToGORMOrder(order)
	if err := r.DB.WithContext(ctx).Create(orderModel).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	order.ID = orderModel.ID
	for i := range orderModel.Items {
		order.Items[i].ID = orderModel.Items[i].ID
		order.Items[i].OrderID = orderModel.ID
	}
	return nil
}

func (r *DefaultOrderRepository) WithinTx(ctx context.Context, fn func(tx domain.OrderTx) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderTxRepo{tx: tx})
	})
}

// orderTxRepo lives for exactly one database transaction; every lock it takes
// is released on commit or rollback.
type orderTxRepo struct {
	tx *gorm.DB
}

func (r *orderTxRepo) LockOrderByUID(orderUID string) (*domain.Order, error) {
	var orderModel models.OrderModel
	err := r.tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items.Product").
		First(&orderModel, "order_uid = ?", orderUID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock order %s: %w", orderUID, err)
	}

	return mappers.ToDomainOrder(&orderModel), nil
}

func (r *orderTxRepo) SaveOrder(order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	order.NormalizeCOD()

	updates := map[string]any{
		"payment_status":    order.PaymentStatus,
		"status":            order.Status,
		"cod_value":         order.CODValue,
		"shipment_order_id": order.ShipmentOrderID,
		"shipment_order_no": order.ShipmentOrderNo,
	}
	err := r.tx.Model(&models.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("save order %d: %w", order.ID, err)
	}
	return nil
}

func (r *orderTxRepo) LockProducts(productIDs []uint64) ([]*domain.Product, error) {
	var productModels []models.ProductModel
	err := r.tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", productIDs).
		Order("id").
		Find(&productModels).Error
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}

	products := make([]*domain.Product, len(productModels))
	for i := range productModels {
		products[i] = mappers.ToDomainProduct(&productModels[i])
	}
	return products, nil
}

func (r *orderTxRepo) SaveProductStock(productID uint64, stock int) error {
	err := r.tx.Model(&models.ProductModel{}).
		Where("id = ?", productID).
		Update("stock", stock).Error
	if err != nil {
		return fmt.Errorf("save product %d stock: %w", productID, err)
	}
	return nil
}
