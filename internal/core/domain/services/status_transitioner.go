package services

import (
	"time"

	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/order"
)

// StatusTransitioner applies staff status changes.
//
// Business rules:
//   - the actor must be allowed to change status (see AccessPolicy)
//   - terminal orders never change
//   - any other move between known statuses is accepted, backward moves included
//   - every accepted change yields exactly one audit entry
//
// The caller persists the order and the returned entry in one unit of work.
type StatusTransitioner struct {
	policy AccessPolicy
}

func NewStatusTransitioner(policy AccessPolicy) StatusTransitioner {
	return StatusTransitioner{policy: policy}
}

// Apply moves o to next on behalf of a.
//
// Returns:
//   - order.StatusChange: the audit entry to append
//   - error: PermissionDeniedError, InvalidStateError for a terminal order or a
//     validation error for an unknown status; o is unchanged on error
func (s StatusTransitioner) Apply(o *order.Order, next order.Status, a actor.Actor, at time.Time) (order.StatusChange, error) {
	if err := o.Validate(); err != nil {
		return order.StatusChange{}, err
	}
	if err := next.Validate(); err != nil {
		return order.StatusChange{}, err
	}
	if err := s.policy.Authorize(a, OpChangeStatus, ResourceOf(o)); err != nil {
		return order.StatusChange{}, err
	}

	return o.ChangeStatus(next, a.ID(), at)
}
