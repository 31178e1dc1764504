// Package directory reads products and customer profiles from the PostgreSQL
// database owned by the storefront. The tables are read-only for this service.
package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const upstream = "directory"

const (
	productQuery = `SELECT id, title, list_price, promotional_price
	                FROM products WHERE id = $1`

	customerQuery = `SELECT id, name, phone
	                 FROM customers WHERE id = $1`

	addressesQuery = `SELECT street, number, district, city, postal_code, complement
	                  FROM customer_addresses WHERE customer_id = $1
	                  ORDER BY position`
)

// Open connects to the directory database and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping directory database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	return db, nil
}

// SQLDirectory implements ports.ProductCatalog and ports.CustomerDirectory.
type SQLDirectory struct {
	db *sql.DB
}

func NewSQLDirectory(db *sql.DB) *SQLDirectory {
	return &SQLDirectory{db: db}
}

// GetProduct returns the product with its current prices. A NULL price column
// means the product has no such price.
func (d *SQLDirectory) GetProduct(ctx context.Context, id kernel.UUID) (services.CatalogProduct, error) {
	var (
		rawID     string
		title     string
		listPrice decimal.NullDecimal
		promotion decimal.NullDecimal
	)
	err := d.db.QueryRowContext(ctx, productQuery, id.String()).Scan(&rawID, &title, &listPrice, &promotion)
	if errors.Is(err, sql.ErrNoRows) {
		return services.CatalogProduct{}, errs.NewObjectNotFoundError("product", id.String())
	}
	if err != nil {
		return services.CatalogProduct{}, classify(err)
	}

	return services.CatalogProduct{
		ID:               id,
		Title:            title,
		ListPrice:        optionalMoney(listPrice),
		PromotionalPrice: optionalMoney(promotion),
	}, nil
}

// GetCustomer returns the profile and address book of a customer.
func (d *SQLDirectory) GetCustomer(ctx context.Context, id kernel.UUID) (ports.Customer, error) {
	var rawID, name, phone string
	err := d.db.QueryRowContext(ctx, customerQuery, id.String()).Scan(&rawID, &name, &phone)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.Customer{}, errs.NewObjectNotFoundError("customer", id.String())
	}
	if err != nil {
		return ports.Customer{}, classify(err)
	}

	addresses, err := d.addresses(ctx, id)
	if err != nil {
		return ports.Customer{}, err
	}

	return ports.Customer{
		ID:        id,
		Name:      name,
		Phone:     kernel.NewPhone(phone),
		Addresses: addresses,
	}, nil
}

// addresses returns the address book in position order. Incomplete entries are skipped.
func (d *SQLDirectory) addresses(ctx context.Context, customerID kernel.UUID) ([]order.Address, error) {
	rows, err := d.db.QueryContext(ctx, addressesQuery, customerID.String())
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	addresses := make([]order.Address, 0)
	for rows.Next() {
		var street, number, district, city string
		var postalCode, complement sql.NullString
		if err := rows.Scan(&street, &number, &district, &city, &postalCode, &complement); err != nil {
			return nil, classify(err)
		}

		address, err := order.NewAddress(street, number, district, city, postalCode.String, complement.String)
		if err != nil {
			continue
		}
		addresses = append(addresses, address)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return addresses, nil
}

func optionalMoney(d decimal.NullDecimal) *kernel.Money {
	if !d.Valid {
		return nil
	}
	m := kernel.NewMoney(d.Decimal)
	return &m
}

// classify reports every query failure as an unavailable upstream. A failing
// directory must never look like a missing product or customer.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		err = fmt.Errorf("%s (%s): %w", pqErr.Code.Name(), pqErr.Code, err)
	}
	return errs.NewUpstreamUnavailableError(upstream, err)
}
