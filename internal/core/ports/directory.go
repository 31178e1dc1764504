package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
)

// ProductCatalog reads current product prices.
type ProductCatalog interface {
	// GetProduct returns errs.ObjectNotFoundError for unknown products and
	// errs.UpstreamUnavailableError when the catalog cannot be reached.
	GetProduct(ctx context.Context, id kernel.UUID) (services.CatalogProduct, error)
}

// Customer is what the core needs to know about a customer.
// Addresses are in address book order; checkout picks one by index.
type Customer struct {
	ID        kernel.UUID
	Name      string
	Phone     kernel.Phone
	Addresses []order.Address
}

// CustomerDirectory reads customer profiles.
type CustomerDirectory interface {
	// GetCustomer returns errs.ObjectNotFoundError for unknown customers and
	// errs.UpstreamUnavailableError when the directory cannot be reached.
	GetCustomer(ctx context.Context, id kernel.UUID) (Customer, error)
}
