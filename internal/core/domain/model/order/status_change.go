package order

import (
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// StatusChange is the audit entry recorded for one accepted status transition.
// It names the order, the staff member or courier who made the change, the new
// status and when it happened. Entries are written once and never modified or deleted.
type StatusChange struct {
	id         kernel.UUID
	orderID    kernel.UUID
	actorID    kernel.UUID
	newStatus  Status
	occurredAt time.Time
}

// NewStatusChange records a transition of orderID to newStatus made by actorID at occurredAt.
func NewStatusChange(orderID, actorID kernel.UUID, newStatus Status, occurredAt time.Time) (StatusChange, error) {
	return RestoreStatusChange(kernel.NewUUID(), orderID, actorID, newStatus, occurredAt)
}

// RestoreStatusChange rebuilds an audit entry read from storage.
func RestoreStatusChange(
	id, orderID, actorID kernel.UUID,
	newStatus Status,
	occurredAt time.Time,
) (StatusChange, error) {
	var err error
	for _, candidate := range []kernel.UUID{id, orderID, actorID} {
		if idErr := candidate.Validate(); idErr != nil {
			err = errors.Join(err, idErr)
		}
	}
	if statusErr := newStatus.Validate(); statusErr != nil {
		err = errors.Join(err, statusErr)
	}
	if occurredAt.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("occurred at"))
	}
	if err != nil {
		return StatusChange{}, err
	}

	return StatusChange{
		id:         id,
		orderID:    orderID,
		actorID:    actorID,
		newStatus:  newStatus,
		occurredAt: occurredAt.UTC(),
	}, nil
}

func (c StatusChange) ID() kernel.UUID       { return c.id }
func (c StatusChange) OrderID() kernel.UUID  { return c.orderID }
func (c StatusChange) ActorID() kernel.UUID  { return c.actorID }
func (c StatusChange) NewStatus() Status     { return c.newStatus }
func (c StatusChange) OccurredAt() time.Time { return c.occurredAt }
