package services

import (
	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
)

// Operation is an action on orders that needs authorization.
type Operation string

const (
	OpCreateOrder     Operation = "create order"
	OpReadOrder       Operation = "read order"
	OpListOrders      Operation = "list orders"
	OpChangeStatus    Operation = "change order status"
	OpClaimOrder      Operation = "claim order"
	OpConfirmDelivery Operation = "confirm delivery"
	OpViewHistory     Operation = "view status history"
)

// Resource describes the order an operation targets. OwnerID is the customer who
// placed (or is placing) the order and Status its current status; either may be
// zero when the operation has no such target.
type Resource struct {
	OwnerID kernel.UUID
	Status  order.Status
}

// ResourceOf describes an existing order.
func ResourceOf(o *order.Order) Resource {
	return Resource{OwnerID: o.CustomerID(), Status: o.Status()}
}

// OrderScope restricts an order listing. A nil CustomerID and an empty Statuses
// slice both mean "no restriction".
type OrderScope struct {
	CustomerID *kernel.UUID
	Statuses   []order.Status
}

// AccessPolicy is the authorization table of the order lifecycle:
//
//	operation          customer     staff/admin  courier
//	create order       self only    -            -
//	read order         own only     any          Ready/OutForDelivery only
//	list orders        own only     any          Ready/OutForDelivery only
//	change status      -            yes          -
//	claim order        -            -            yes
//	confirm delivery   -            -            yes
//	view history       -            yes          -
//
// Administrators have every staff privilege. Every denial is a PermissionDeniedError;
// an actor asking for someone else's order is denied, not silently filtered.
type AccessPolicy struct{}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// Authorize decides whether a may perform op on res.
func (p AccessPolicy) Authorize(a actor.Actor, op Operation, res Resource) error {
	switch op {
	case OpCreateOrder:
		if a.Category() != actor.Customer {
			return deny(op, "only customers place orders")
		}
		if !a.Is(res.OwnerID) {
			return deny(op, "customers may only order for themselves")
		}
		return nil

	case OpReadOrder:
		switch {
		case a.IsStaffLike():
			return nil
		case a.Category() == actor.Customer:
			if !a.Is(res.OwnerID) {
				return deny(op, "order belongs to another customer")
			}
			return nil
		case a.Category() == actor.Courier:
			if !res.Status.IsDeliverable() {
				return deny(op, "order is not available for delivery")
			}
			return nil
		}

	case OpListOrders:
		if a.Category() == actor.Courier && !res.Status.IsDeliverable() {
			return deny(op, "couriers only see orders available for delivery")
		}
		if a.Category() == actor.Customer && !a.Is(res.OwnerID) {
			return deny(op, "customers only list their own orders")
		}
		return nil

	case OpChangeStatus, OpViewHistory:
		if a.IsStaffLike() {
			return nil
		}

	case OpClaimOrder, OpConfirmDelivery:
		if a.Category() == actor.Courier {
			return nil
		}
	}

	return deny(op, "not allowed for "+a.Category().String())
}

// ScopeOrderList narrows a requested listing to what a may see.
//
// Customers always get their own orders; asking for another customer's orders is
// denied. Couriers get Ready and OutForDelivery orders; asking for any other status
// is denied. Staff and administrators get the request unchanged.
func (p AccessPolicy) ScopeOrderList(a actor.Actor, requested OrderScope) (OrderScope, error) {
	switch a.Category() {
	case actor.Customer:
		if requested.CustomerID != nil {
			if err := p.Authorize(a, OpListOrders, Resource{OwnerID: *requested.CustomerID}); err != nil {
				return OrderScope{}, err
			}
		}
		self := a.ID()
		return OrderScope{CustomerID: &self, Statuses: requested.Statuses}, nil

	case actor.Courier:
		if len(requested.Statuses) == 0 {
			return OrderScope{
				CustomerID: requested.CustomerID,
				Statuses:   []order.Status{order.Ready, order.OutForDelivery},
			}, nil
		}
		for _, s := range requested.Statuses {
			if err := p.Authorize(a, OpListOrders, Resource{Status: s}); err != nil {
				return OrderScope{}, err
			}
		}
		return requested, nil

	case actor.Staff, actor.Administrator:
		return requested, nil
	}

	return OrderScope{}, deny(OpListOrders, "not allowed for "+a.Category().String())
}

func deny(op Operation, reason string) error {
	return errs.NewPermissionDeniedError(string(op), reason)
}
