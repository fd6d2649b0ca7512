package rajaongkir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tokoniaga/order-service/internal/domain"
)

// ShipmentClient opens shipment orders against the RajaOngkir order API.
// Creation is expected to return 201; anything else is a provider failure.
type ShipmentClient struct {
	orderURL   string
	apiKey     string
	httpClient *http.Client
}

func NewShipmentClient(orderURL, apiKey string) *ShipmentClient {
	return &ShipmentClient{
		orderURL: orderURL,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type shipmentOrderDetail struct {
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Qty          int     `json:"qty"`
	Subtotal     float64 `json:"subtotal"`
	Weight       float64 `json:"weight"`
}

type shipmentOrderBody struct {
	OrderDate           string  `json:"order_date"`
	BrandName           string  `json:"brand_name"`
	ShipperName         string  `json:"shipper_name"`
	ShipperPhone        string  `json:"shipper_phone"`
	ShipperDestination  int     `json:"shipper_destination_id"`
	ShipperAddress      string  `json:"shipper_address"`
	ShipperEmail        string  `json:"shipper_email"`
	ReceiverName        string  `json:"receiver_name"`
	ReceiverPhone       string  `json:"receiver_phone"`
	ReceiverDestination int     `json:"receiver_destination_id"`
	ReceiverAddress     string  `json:"receiver_address"`
	Shipping            string  `json:"shipping"`
	ShippingType        string  `json:"shipping_type"`
	PaymentMethod       string  `json:"payment_method"`
	ShippingCost        int     `json:"shipping_cost"`
	ShippingCashback    int     `json:"shipping_cashback"`
	ServiceFee          int     `json:"service_fee"`
	AdditionalCost      int     `json:"additional_cost"`
	GrandTotal          int     `json:"grand_total"`
	CODValue            int     `json:"cod_value"`
	InsuranceValue      float64 `json:"insurance_value"`

	OrderDetails []shipmentOrderDetail `json:"order_details"`
}

type shipmentOrderResponse struct {
	Data struct {
		OrderID json.Number `json:"order_id"`
		OrderNo string      `json:"order_no"`
	} `json:"data"`
	Meta struct {
		Message string `json:"message"`
	} `json:"meta"`
}

func (c *ShipmentClient) CreateShipmentOrder(ctx context.Context, input domain.ShipmentOrderInput) (domain.ShipmentRef, error) {
	order := input.Order
	store := input.Store
	customer := input.Customer

	body := shipmentOrderBody{
		OrderDate:           order.CreatedAt.Format("2006-01-02"),
		BrandName:           store.BrandName,
		ShipperName:         store.Name,
		ShipperPhone:        store.CleanPhoneNumber(),
		ShipperDestination:  order.OriginRO,
		ShipperAddress:      order.OriginAddress,
		ShipperEmail:        store.Email,
		ReceiverName:        customer.Username,
		ReceiverPhone:       customer.CleanPhoneNumber(),
		ReceiverDestination: order.DestinationRO,
		ReceiverAddress:     order.DestinationAddress,
		Shipping:            order.CourierCode,
		ShippingType:        order.ShippingType,
		PaymentMethod:       string(order.PaymentMethod),
		ShippingCost:        order.ShippingCost,
		ShippingCashback:    order.ShippingCashback,
		ServiceFee:          order.ServiceFee,
		AdditionalCost:      order.AdditionalCost,
		GrandTotal:          order.GrandTotal(),
		CODValue:            order.CODValue,
		InsuranceValue:      order.InsuranceValue(),
	}
	for i := range order.Items {
		item := &order.Items[i]
		var weight float64
		if item.Product != nil {
			weight = item.Product.Weight
		}
		body.OrderDetails = append(body.OrderDetails, shipmentOrderDetail{
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Qty:          item.Qty,
			Subtotal:     item.Subtotal(),
			Weight:       weight,
		})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return domain.ShipmentRef{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.orderURL, bytes.NewReader(payload))
	if err != nil {
		return domain.ShipmentRef{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)

	response, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.ShipmentRef{}, fmt.Errorf("rajaongkir order request: %w", err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return domain.ShipmentRef{}, err
	}

	var orderResp shipmentOrderResponse
	if err := json.Unmarshal(responseBodyBytes, &orderResp); err != nil {
		return domain.ShipmentRef{}, fmt.Errorf("%w: %s", domain.ErrInvalidProviderResp, err)
	}

	if response.StatusCode != http.StatusCreated {
		message := orderResp.Meta.Message
		if message == "" {
			message = fmt.Sprintf("unexpected status %d", response.StatusCode)
		}
		return domain.ShipmentRef{}, &domain.ProviderError{Provider: "rajaongkir", Message: message}
	}

	if orderResp.Data.OrderID == "" || orderResp.Data.OrderNo == "" {
		return domain.ShipmentRef{}, domain.ErrInvalidProviderResp
	}

	return domain.ShipmentRef{
		OrderID: orderResp.Data.OrderID.String(),
		OrderNo: orderResp.Data.OrderNo,
	}, nil
}
