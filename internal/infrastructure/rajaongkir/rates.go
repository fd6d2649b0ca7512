package rajaongkir

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tokoniaga/order-service/internal/domain"
)

// RatesClient calls the RajaOngkir domestic-cost API. It maps provider
// failures to domain.ProviderError with the provider's message verbatim and
// never retries.
type RatesClient struct {
	costURL    string
	apiKey     string
	httpClient *http.Client
}

func NewRatesClient(costURL, apiKey string) *RatesClient {
	return &RatesClient{
		costURL: costURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type costResponse struct {
	Data []struct {
		Name        string `json:"name"`
		Code        string `json:"code"`
		Service     string `json:"service"`
		Description string `json:"description"`
		Cost        int    `json:"cost"`
		ETD         string `json:"etd"`
	} `json:"data"`
	Meta struct {
		Message string `json:"message"`
	} `json:"meta"`
}

func (c *RatesClient) GetDomesticCost(ctx context.Context, req domain.QuoteRequest) ([]domain.ShippingQuote, error) {
	form := url.Values{}
	form.Set("origin", strconv.Itoa(req.OriginRO))
	form.Set("destination", strconv.Itoa(req.DestinationRO))
	form.Set("weight", strconv.Itoa(req.Weight))
	form.Set("courier", req.Courier)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.costURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("key", c.apiKey)

	response, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("rajaongkir cost request: %w", err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	var costResp costResponse
	if err := json.Unmarshal(responseBodyBytes, &costResp); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProviderResp, err)
	}

	if response.StatusCode != http.StatusOK {
		return nil, &domain.ProviderError{Provider: "rajaongkir", Message: costResp.Meta.Message}
	}

	quotes := make([]domain.ShippingQuote, 0, len(costResp.Data))
	for _, item := range costResp.Data {
		quotes = append(quotes, domain.ShippingQuote{
			Name:        item.Name,
			Code:        item.Code,
			Service:     item.Service,
			Description: item.Description,
			Cost:        item.Cost,
			ETD:         item.ETD,
		})
	}
	return quotes, nil
}
