package mappers

import (
	"github.com/tokoniaga/order-service/internal/domain"
	"github.com/tokoniaga/order-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	order := &domain.Order{
		ID:                 model.ID,
		OrderUID:           model.OrderUID,
		UserID:             model.UserID,
		StoreID:            model.StoreID,
		Status:             model.Status,
		PaymentStatus:      model.PaymentStatus,
		PaymentMethod:      model.PaymentMethod,
		ShippingCost:       model.ShippingCost,
		ShippingCashback:   model.ShippingCashback,
		ServiceFee:         model.ServiceFee,
		AdditionalCost:     model.AdditionalCost,
		CODValue:           model.CODValue,
		CourierCode:        model.CourierCode,
		ShippingType:       model.ShippingType,
		OriginRO:           model.OriginRO,
		OriginAddress:      model.OriginAddress,
		DestinationRO:      model.DestinationRO,
		DestinationAddress: model.DestinationAddress,
		ShipmentOrderID:    model.ShipmentOrderID,
		ShipmentOrderNo:    model.ShipmentOrderNo,
		IsArchived:         model.IsArchived,
		DeliveredAt:        model.DeliveredAt,
		CanceledAt:         model.CanceledAt,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
	for i := range model.Items {
		order.Items = append(order.Items, *ToDomainOrderItem(&model.Items[i]))
	}
	return order
}

func ToDomainOrderItem(model *models.OrderItemModel) *domain.OrderItem {
	item := &domain.OrderItem{
		ID:           model.ID,
		OrderID:      model.OrderID,
		ProductID:    model.ProductID,
		ProductName:  model.ProductName,
		ProductPrice: model.ProductPrice,
		Qty:          model.Qty,
	}
	if model.Product.ID != 0 {
		item.Product = ToDomainProduct(&model.Product)
	}
	return item
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	model := &models.OrderModel{
		ID:                 order.ID,
		OrderUID:           order.OrderUID,
		UserID:             order.UserID,
		StoreID:            order.StoreID,
		Status:             order.Status,
		PaymentStatus:      order.PaymentStatus,
		PaymentMethod:      order.PaymentMethod,
		ShippingCost:       order.ShippingCost,
		ShippingCashback:   order.ShippingCashback,
		ServiceFee:         order.ServiceFee,
		AdditionalCost:     order.AdditionalCost,
		CODValue:           order.CODValue,
		CourierCode:        order.CourierCode,
		ShippingType:       order.ShippingType,
		OriginRO:           order.OriginRO,
		OriginAddress:      order.OriginAddress,
		DestinationRO:      order.DestinationRO,
		DestinationAddress: order.DestinationAddress,
		ShipmentOrderID:    order.ShipmentOrderID,
		ShipmentOrderNo:    order.ShipmentOrderNo,
		IsArchived:         order.IsArchived,
		DeliveredAt:        order.DeliveredAt,
		CanceledAt:         order.CanceledAt,
	}
	for i := range order.Items {
		item := order.Items[i]
		model.Items = append(model.Items, models.OrderItemModel{
			ID:           item.ID,
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Qty:          item.Qty,
		})
	}
	return model
}
