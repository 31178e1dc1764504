package order

import (
	"errors"
	"strings"

	"restaurant/internal/pkg/errs"
)

// Address is the delivery address copied from the customer's address book at checkout.
// It is a snapshot: later edits to the address book never reach existing orders.
type Address struct {
	street     string
	number     string
	district   string
	city       string
	postalCode string
	complement string
}

// NewAddress validates and builds an address snapshot.
// Street, number, district and city are required.
func NewAddress(street, number, district, city, postalCode, complement string) (Address, error) {
	a := Address{
		street:     strings.TrimSpace(street),
		number:     strings.TrimSpace(number),
		district:   strings.TrimSpace(district),
		city:       strings.TrimSpace(city),
		postalCode: strings.TrimSpace(postalCode),
		complement: strings.TrimSpace(complement),
	}
	if err := a.Validate(); err != nil {
		return Address{}, err
	}
	return a, nil
}

// Validate checks the required parts of the address.
func (a Address) Validate() error {
	var err error
	if a.street == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("address street"))
	}
	if a.number == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("address number"))
	}
	if a.district == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("address district"))
	}
	if a.city == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("address city"))
	}
	return err
}

func (a Address) Street() string     { return a.street }
func (a Address) Number() string     { return a.number }
func (a Address) District() string   { return a.district }
func (a Address) City() string       { return a.city }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Complement() string { return a.complement }
