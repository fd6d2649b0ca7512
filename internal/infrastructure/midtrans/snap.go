package midtrans

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tokoniaga/order-service/internal/domain"
)

// SnapClient mints Snap payment tokens and authenticates webhook callbacks
// with the merchant server key.
type SnapClient struct {
	baseURL    string
	serverKey  string
	httpClient *http.Client
}

func NewSnapClient(baseURL, serverKey string) *SnapClient {
	return &SnapClient{
		baseURL:   baseURL,
		serverKey: serverKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type snapTransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int    `json:"gross_amount"`
}

type snapItemDetail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

type snapCustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type snapRequest struct {
	TransactionDetails snapTransactionDetails `json:"transaction_details"`
	ItemDetails        []snapItemDetail       `json:"item_details"`
	CustomerDetails    snapCustomerDetails    `json:"customer_details"`
}

type snapResponse struct {
	Token         string   `json:"token"`
	ErrorMessages []string `json:"error_messages"`
}

func (c *SnapClient) CreateTransaction(ctx context.Context, req domain.PaymentTransactionRequest) (string, error) {
	body := snapRequest{
		TransactionDetails: snapTransactionDetails{
			OrderID:     req.OrderUID,
			GrossAmount: req.GrossAmount,
		},
		CustomerDetails: snapCustomerDetails{
			FirstName: req.Customer.FirstName,
			Email:     req.Customer.Email,
			Phone:     req.Customer.Phone,
		},
	}
	for _, line := range req.Items {
		body.ItemDetails = append(body.ItemDetails, snapItemDetail{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Qty,
		})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/snap/v1/transactions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.SetBasicAuth(c.serverKey, "")

	response, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("midtrans snap request: %w", err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	var snapResp snapResponse
	if err := json.Unmarshal(responseBodyBytes, &snapResp); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidProviderResp, err)
	}

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusCreated {
		message := fmt.Sprintf("unexpected status %d", response.StatusCode)
		if len(snapResp.ErrorMessages) > 0 {
			message = snapResp.ErrorMessages[0]
		}
		return "", &domain.ProviderError{Provider: "midtrans", Message: message}
	}

	if snapResp.Token == "" {
		return "", domain.ErrInvalidProviderResp
	}
	return snapResp.Token, nil
}

// Signature computes the webhook signature: SHA-512 over the concatenation of
// order id, status code, gross amount and the server key.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func (c *SnapClient) VerifySignature(orderUID, statusCode, grossAmount, signature string) bool {
	return Signature(orderUID, statusCode, grossAmount, c.serverKey) == signature
}
