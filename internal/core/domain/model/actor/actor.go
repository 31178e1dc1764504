package actor

import (
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Category groups actors with the same permissions.
type Category string

const (
	Customer      Category = "customer"
	Staff         Category = "staff"
	Administrator Category = "administrator"
	Courier       Category = "courier"
)

// roleAliases maps role names issued by the storefront identity provider onto categories.
var roleAliases = map[string]Category{
	"cliente":       Customer,
	"customer":      Customer,
	"funcionario":   Staff,
	"staff":         Staff,
	"admin":         Administrator,
	"administrator": Administrator,
	"motoboy":       Courier,
	"courier":       Courier,
}

// CategoryFromRole resolves a role or category name, case-insensitively.
func CategoryFromRole(role string) (Category, error) {
	if c, ok := roleAliases[strings.ToLower(strings.TrimSpace(role))]; ok {
		return c, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("actor role", fmt.Errorf("%q is not a known role", role))
}

func (c Category) String() string {
	return string(c)
}

// Actor is an authenticated principal.
type Actor struct {
	id       kernel.UUID
	category Category
	role     string
}

// NewActor builds an actor from the identity, category and raw role supplied by authentication.
func NewActor(id kernel.UUID, category Category, role string) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if _, ok := map[Category]struct{}{Customer: {}, Staff: {}, Administrator: {}, Courier: {}}[category]; !ok {
		return Actor{}, errs.NewValueIsInvalidErrorWithCause("actor category", fmt.Errorf("%q is not a known category", category))
	}
	return Actor{id: id, category: category, role: role}, nil
}

func (a Actor) ID() kernel.UUID    { return a.id }
func (a Actor) Category() Category { return a.category }
func (a Actor) Role() string       { return a.role }

// IsStaffLike reports whether the actor has staff privileges.
// Administrators are a superset of staff.
func (a Actor) IsStaffLike() bool {
	return a.category == Staff || a.category == Administrator
}

// Is reports whether the actor's identity is id.
func (a Actor) Is(id kernel.UUID) bool {
	return a.id.IsEqual(id)
}
