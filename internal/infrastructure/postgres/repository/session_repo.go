package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tokoniaga/order-service/internal/domain"
	"github.com/tokoniaga/order-service/internal/infrastructure/postgres/mappers"
	"github.com/tokoniaga/order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCheckoutSessionRepository struct {
	DB *gorm.DB
}

func NewDefaultCheckoutSessionRepository(db *gorm.DB) *DefaultCheckoutSessionRepository {
	return &DefaultCheckoutSessionRepository{DB: db}
}

func (r *DefaultCheckoutSessionRepository) Create(ctx context.Context, session *domain.CheckoutSession) error {
	sessionModel, err := mappers.ToGORMSession(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.DB.WithContext(ctx).Create(sessionModel).Error; err != nil {
		return fmt.Errorf("create checkout session: %w", err)
	}
	return nil
}

func (r *DefaultCheckoutSessionRepository) Get(ctx context.Context, id string, userID uint64) (*domain.CheckoutSession, error) {
	var sessionModel models.CheckoutSessionModel
	err := r.DB.WithContext(ctx).
		First(&sessionModel, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("get checkout session: %w", err)
	}

	return mappers.ToDomainSession(&sessionModel)
}

// Consume is a single conditional update, so only one of two concurrent
// redemptions of the same session can win.
func (r *DefaultCheckoutSessionRepository) Consume(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).
		Model(&models.CheckoutSessionModel{}).
		Where("id = ? AND consumed_at IS NULL", id).
		Update("consumed_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("consume checkout session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrSessionExpired
	}
	return nil
}
