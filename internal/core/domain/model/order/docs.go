// Package order provides the Order aggregate of the restaurant delivery domain
// together with its value objects and audit record.
//
// The package includes:
//   - Order: the aggregate root holding customer, address snapshot, line items, totals and status
//   - Status: the closed enumeration of fulfillment states and its transition rules
//   - LineItem and Address: snapshots copied at checkout, never live references
//   - StatusChange: the immutable audit entry written for every accepted transition
//
// Key business rules:
//   - total = max(0, subtotal + delivery_fee - discount), never negative
//   - unit prices and the delivery address are fixed at creation
//   - Delivered and Cancelled are terminal; any other status may move to any status
//   - a Ready order is claimed into OutForDelivery once, re-claims are no-ops
package order
