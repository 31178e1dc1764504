package http

import (
	"time"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Monetary amounts are accepted as JSON numbers or strings and always returned as
// strings with two decimal places.

type createOrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	CustomerID     string                   `json:"customer_id"`
	AddressIndex   int                      `json:"address_index"`
	Items          []createOrderItemRequest `json:"items"`
	DeliveryFee    decimal.Decimal          `json:"delivery_fee"`
	Discount       decimal.Decimal          `json:"discount"`
	PaymentMethod  string                   `json:"payment_method"`
	DeliveryMethod string                   `json:"delivery_method"`
	Notes          string                   `json:"notes"`
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

type confirmDeliveryRequest struct {
	Code string `json:"code"`
}

type addressResponse struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	District   string `json:"district"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code,omitempty"`
	Complement string `json:"complement,omitempty"`
}

type lineItemResponse struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

type orderResponse struct {
	ID             string             `json:"id"`
	Number         string             `json:"number"`
	CustomerID     string             `json:"customer_id"`
	Status         string             `json:"status"`
	Address        addressResponse    `json:"address"`
	Items          []lineItemResponse `json:"items"`
	Subtotal       string             `json:"subtotal"`
	DeliveryFee    string             `json:"delivery_fee"`
	Discount       string             `json:"discount"`
	Total          string             `json:"total"`
	PaymentMethod  string             `json:"payment_method,omitempty"`
	DeliveryMethod string             `json:"delivery_method"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

type statusChangeResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	ActorID    string    `json:"actor_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type deliveryItemResponse struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price,omitempty"`
}

type deliveryOrderResponse struct {
	ID            string                 `json:"id"`
	Number        string                 `json:"number"`
	CustomerName  string                 `json:"customer_name"`
	Address       addressResponse        `json:"address"`
	Items         []deliveryItemResponse `json:"items"`
	Total         string                 `json:"total"`
	Notes         string                 `json:"notes,omitempty"`
	Status        string                 `json:"status"`
	PaymentMethod string                 `json:"payment_method,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

func toAddressResponse(a order.Address) addressResponse {
	return addressResponse{
		Street:     a.Street(),
		Number:     a.Number(),
		District:   a.District(),
		City:       a.City(),
		PostalCode: a.PostalCode(),
		Complement: a.Complement(),
	}
}

func toOrderResponse(o *order.Order) orderResponse {
	items := make([]lineItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, lineItemResponse{
			ProductID: item.ProductID().String(),
			Title:     item.Title(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().String(),
			Total:     item.Total().String(),
		})
	}

	totals := o.Totals()
	return orderResponse{
		ID:             o.ID().String(),
		Number:         o.Number(),
		CustomerID:     o.CustomerID().String(),
		Status:         o.Status().String(),
		Address:        toAddressResponse(o.DeliveryAddress()),
		Items:          items,
		Subtotal:       totals.Subtotal.String(),
		DeliveryFee:    totals.DeliveryFee.String(),
		Discount:       totals.Discount.String(),
		Total:          totals.Total.String(),
		PaymentMethod:  o.Details().PaymentMethod,
		DeliveryMethod: o.Details().DeliveryMethod.String(),
		Notes:          o.Details().Notes,
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}

func toStatusChangeResponse(c order.StatusChange) statusChangeResponse {
	return statusChangeResponse{
		ID:         c.ID().String(),
		OrderID:    c.OrderID().String(),
		ActorID:    c.ActorID().String(),
		Status:     c.NewStatus().String(),
		OccurredAt: c.OccurredAt(),
	}
}

func toDeliveryOrderResponse(v queries.DeliveryView) deliveryOrderResponse {
	items := make([]deliveryItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		line := deliveryItemResponse{Title: item.Title, Quantity: item.Quantity}
		if item.UnitPrice != nil {
			line.UnitPrice = item.UnitPrice.String()
		}
		items = append(items, line)
	}

	return deliveryOrderResponse{
		ID:            v.OrderID.String(),
		Number:        v.Number,
		CustomerName:  v.CustomerName,
		Address:       toAddressResponse(v.Address),
		Items:         items,
		Total:         v.Total.String(),
		Notes:         v.Notes,
		Status:        v.Status.String(),
		PaymentMethod: v.PaymentMethod,
		CreatedAt:     v.CreatedAt,
	}
}
