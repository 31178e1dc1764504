// Package services holds the domain services of the order lifecycle: rules that
// need more than one aggregate or value to decide, or that are shared by several
// use cases.
//
// The package includes:
//   - PricingCalculator: turns requested products and adjustments into priced line items and totals
//   - AccessPolicy: the single table deciding which actor may perform which operation
//   - StatusTransitioner: authorized status changes that yield one audit entry each
//   - DeliveryHandoff: courier claim and proof-of-delivery verification
//
// All services are stateless and free of I/O. Loading and persisting orders is
// the job of the application layer.
package services
