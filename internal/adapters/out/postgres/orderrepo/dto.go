// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored as one row in "orders" with its address and totals embedded,
// plus one row per line item in "order_items".
package orderrepo

import (
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as its wire name. A row with an unknown name is corrupt.
type OrderDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Address        AddressDTO      `gorm:"embedded;embeddedPrefix:address_"`
	Items          []LineItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryFee    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status         string          `gorm:"type:varchar(32);index;not null"`
	PaymentMethod  string          `gorm:"type:varchar(64)"`
	DeliveryMethod string          `gorm:"type:varchar(16)"`
	Notes          string          `gorm:"type:text"`
	CreatedAt      time.Time       `gorm:"index;not null;autoCreateTime:false"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime:false"`
	Version        int             `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the address snapshot embedded in the order row.
type AddressDTO struct {
	Street     string `gorm:"type:varchar(255)"`
	Number     string `gorm:"type:varchar(32)"`
	District   string `gorm:"type:varchar(128)"`
	City       string `gorm:"type:varchar(128)"`
	PostalCode string `gorm:"type:varchar(16)"`
	Complement string `gorm:"type:varchar(255)"`
}

// LineItemDTO is one priced line of an order. Position keeps the order in which
// items were placed.
type LineItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Title     string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (LineItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()
	address := o.DeliveryAddress()
	totals := o.Totals()
	details := o.Details()

	items := make([]LineItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, LineItemDTO{
			OrderID:   id,
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Title:     item.Title(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		})
	}

	return OrderDTO{
		ID:         id,
		CustomerID: o.CustomerID().Bytes(),
		Address: AddressDTO{
			Street:     address.Street(),
			Number:     address.Number(),
			District:   address.District(),
			City:       address.City(),
			PostalCode: address.PostalCode(),
			Complement: address.Complement(),
		},
		Items:          items,
		Subtotal:       totals.Subtotal.Decimal(),
		DeliveryFee:    totals.DeliveryFee.Decimal(),
		Discount:       totals.Discount.Decimal(),
		Total:          totals.Total.Decimal(),
		Status:         o.Status().String(),
		PaymentMethod:  details.PaymentMethod,
		DeliveryMethod: details.DeliveryMethod.String(),
		Notes:          details.Notes,
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
		Version:        o.Version(),
	}
}

// toDomain rebuilds the aggregate through RestoreOrder, so a row that violates
// an invariant is reported as an error instead of being loaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(
		dto.Address.Street,
		dto.Address.Number,
		dto.Address.District,
		dto.Address.City,
		dto.Address.PostalCode,
		dto.Address.Complement,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	var itemsErr error
	for _, itemDTO := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if idErr != nil {
			itemsErr = errors.Join(itemsErr, idErr)
			continue
		}
		item, itemErr := order.NewLineItem(productID, itemDTO.Title, itemDTO.Quantity, kernel.NewMoney(itemDTO.UnitPrice))
		if itemErr != nil {
			itemsErr = errors.Join(itemsErr, itemErr)
			continue
		}
		items = append(items, item)
	}
	if itemsErr != nil {
		return nil, itemsErr
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	totals := order.Totals{
		Subtotal:    kernel.NewMoney(dto.Subtotal),
		DeliveryFee: kernel.NewMoney(dto.DeliveryFee),
		Discount:    kernel.NewMoney(dto.Discount),
		Total:       kernel.NewMoney(dto.Total),
	}
	details := order.Details{
		PaymentMethod:  dto.PaymentMethod,
		DeliveryMethod: order.DeliveryMethod(dto.DeliveryMethod),
		Notes:          dto.Notes,
	}

	return order.RestoreOrder(
		id, customerID, address, items, totals, details,
		status, dto.CreatedAt, dto.UpdatedAt, dto.Version,
	)
}
