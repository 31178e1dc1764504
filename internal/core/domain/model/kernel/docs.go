// Package kernel provides the shared value objects of the restaurant order domain.
//
// The package includes:
//   - UUID: identifier for orders, customers, products, actors and audit entries
//   - Money: a monetary amount fixed at two decimal places
//   - Phone: a customer phone number reduced to its digits
//
// Values are immutable and safe for concurrent use. Zero values are invalid and
// must be created through the constructors, which validate their input.
package kernel
