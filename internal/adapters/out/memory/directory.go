package memory

import (
	"context"
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// Directory is an in-memory product catalog and customer directory.
type Directory struct {
	mu        sync.RWMutex
	products  map[kernel.UUID]services.CatalogProduct
	customers map[kernel.UUID]ports.Customer
}

func NewDirectory() *Directory {
	return &Directory{
		products:  make(map[kernel.UUID]services.CatalogProduct),
		customers: make(map[kernel.UUID]ports.Customer),
	}
}

// PutProduct adds or replaces a product. Existing orders keep the price they were placed at.
func (d *Directory) PutProduct(p services.CatalogProduct) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.products[p.ID] = p
}

// PutCustomer adds or replaces a customer profile.
func (d *Directory) PutCustomer(c ports.Customer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c.Addresses = append(c.Addresses[:0:0], c.Addresses...)
	d.customers[c.ID] = c
}

func (d *Directory) GetProduct(_ context.Context, id kernel.UUID) (services.CatalogProduct, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.products[id]
	if !ok {
		return services.CatalogProduct{}, errs.NewObjectNotFoundError("product", id)
	}
	return p, nil
}

func (d *Directory) GetCustomer(_ context.Context, id kernel.UUID) (ports.Customer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.customers[id]
	if !ok {
		return ports.Customer{}, errs.NewObjectNotFoundError("customer", id)
	}
	c.Addresses = append(c.Addresses[:0:0], c.Addresses...)
	return c, nil
}
