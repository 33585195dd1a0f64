// Package identity describes who is calling the core: a resolved user ID and role.
// How the identity was authenticated is outside this package.
package identity

import (
	"fmt"
	"strings"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
)

// Role is the enumerated staff role of an actor.
type Role int

const (
	UnknownRole Role = iota
	User
	Waiter
	Admin
)

func (r Role) String() string {
	switch r {
	case User:
		return "user"
	case Waiter:
		return "waiter"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

func (r Role) Validate() error {
	if r < User || r > Admin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// ParseRole accepts the lowercase names used by the identity provider.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return User, nil
	case "waiter":
		return Waiter, nil
	case "admin":
		return Admin, nil
	default:
		return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
	}
}

// IsStaff reports whether the role may work the fulfilment queue.
func (r Role) IsStaff() bool {
	return r == Waiter || r == Admin
}

// Actor is the authenticated caller of a core operation.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}
