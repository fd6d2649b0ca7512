package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tokoniaga/order-service/internal/domain"
	"github.com/tokoniaga/order-service/internal/usecase/checkout"
)

// CheckoutUsecase is the slice of the checkout pipeline the HTTP layer needs.
type CheckoutUsecase interface {
	Checkout(ctx context.Context, input checkout.CheckoutInput) (*checkout.CheckoutOutput, error)
	Transaction(ctx context.Context, input checkout.TransactionInput) (*checkout.TransactionOutput, error)
	ProcessPaymentNotification(ctx context.Context, body []byte) (string, error)
}

type OrderHandler struct {
	log     *slog.Logger
	usecase CheckoutUsecase
}

func NewOrderHandler(log *slog.Logger, usecase CheckoutUsecase) *OrderHandler {
	return &OrderHandler{log: log, usecase: usecase}
}

type checkoutRequest struct {
	CartIDs       any    `json:"cart_ids"`
	DestinationID uint64 `json:"destination_id"`
}

type transactionRequest struct {
	CheckoutID   string `json:"checkout_id" binding:"required"`
	ShippingCost int    `json:"shipping_cost" binding:"required,min=1"`
	CourierCode  string `json:"courier_code" binding:"required"`
	ShippingType string `json:"shipping_type" binding:"required"`
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": domain.ErrCartIDsRequired.Error()})
		return
	}

	output, err := h.usecase.Checkout(c.Request.Context(), checkout.CheckoutInput{
		UserID:        userID,
		CartIDs:       req.CartIDs,
		DestinationID: req.DestinationID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *OrderHandler) Transaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	output, err := h.usecase.Transaction(c.Request.Context(), checkout.TransactionInput{
		UserID:       userID,
		CheckoutID:   req.CheckoutID,
		ShippingCost: req.ShippingCost,
		CourierCode:  req.CourierCode,
		ShippingType: req.ShippingType,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, output)
}

// Webhook acknowledges replays and incomplete payments with 200 so the
// gateway stops retrying; only a completed settlement returns 201.
func (h *OrderHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": domain.ErrInvalidPayload.Error()})
		return
	}

	outcome, err := h.usecase.ProcessPaymentNotification(c.Request.Context(), body)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPayload):
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		case errors.Is(err, domain.ErrInvalidSignature):
			c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
		case errors.Is(err, domain.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
		default:
			h.log.Error("webhook processing failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "order processing failed"})
		}
		return
	}

	if outcome == checkout.OutcomeSettled {
		c.JSON(http.StatusCreated, gin.H{"detail": "order processed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "notification received"})
}

func (h *OrderHandler) respondError(c *gin.Context, err error) {
	var providerErr *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrCartIDsRequired),
		errors.Is(err, domain.ErrCartIDsNotIntegers):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, domain.ErrCartNotFound),
		errors.Is(err, domain.ErrStoreUnavailable),
		errors.Is(err, domain.ErrDestinationMissing),
		errors.Is(err, domain.ErrAddressNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, domain.ErrSessionExpired):
		c.JSON(http.StatusRequestTimeout, gin.H{"detail": err.Error()})
	case errors.As(err, &providerErr):
		c.JSON(http.StatusBadGateway, gin.H{"detail": providerErr.Message})
	case errors.Is(err, domain.ErrInvalidProviderResp):
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
	default:
		h.log.Error("request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	}
}

// currentUserID reads the authenticated user id injected by the edge proxy.
func currentUserID(c *gin.Context) (uint64, bool) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "missing user identity"})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid user identity"})
		return 0, false
	}
	return id, true
}
