package services

import (
	"fmt"

	"cafeteria/internal/core/domain/model/identity"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
)

// Action names an operation guarded by role.
type Action string

const (
	CreateOrder      Action = "create order"
	ListOwnOrders    Action = "list own orders"
	ListActiveOrders Action = "list active orders"
	StartOrder       Action = "start order"
	DeliverOrder     Action = "deliver order"
	CancelOrder      Action = "cancel order"
	ViewMonthlyBill  Action = "view monthly bill"
	ViewOrder        Action = "view order"
)

// AccessPolicy decides whether an actor may perform an action.
type AccessPolicy interface {
	Authorize(actor identity.Actor, action Action) error
	AuthorizeOrderView(actor identity.Actor, ownerID kernel.UUID) error
}

// RoleAccessPolicy grants actions by role:
//
//	any role        CreateOrder, ListOwnOrders
//	waiter, admin   ListActiveOrders, StartOrder, DeliverOrder, CancelOrder
//	admin           ViewMonthlyBill
//
// A single order is visible to its owner and to staff.
type RoleAccessPolicy struct {
	grants map[Action][]identity.Role
}

func NewRoleAccessPolicy() RoleAccessPolicy {
	anyone := []identity.Role{identity.User, identity.Waiter, identity.Admin}
	staff := []identity.Role{identity.Waiter, identity.Admin}

	return RoleAccessPolicy{
		grants: map[Action][]identity.Role{
			CreateOrder:      anyone,
			ListOwnOrders:    anyone,
			ListActiveOrders: staff,
			StartOrder:       staff,
			DeliverOrder:     staff,
			CancelOrder:      staff,
			ViewMonthlyBill:  {identity.Admin},
		},
	}
}

func (p RoleAccessPolicy) Authorize(actor identity.Actor, action Action) error {
	if err := actor.Role.Validate(); err != nil {
		return errs.NewForbiddenErrorWithCause(string(action), err)
	}

	for _, role := range p.grants[action] {
		if role == actor.Role {
			return nil
		}
	}

	return errs.NewForbiddenErrorWithCause(string(action), fmt.Errorf("role %s is not allowed", actor.Role))
}

func (p RoleAccessPolicy) AuthorizeOrderView(actor identity.Actor, ownerID kernel.UUID) error {
	if err := actor.Role.Validate(); err != nil {
		return errs.NewForbiddenErrorWithCause(string(ViewOrder), err)
	}
	if actor.Role.IsStaff() || actor.ID.IsEqual(ownerID) {
		return nil
	}
	return errs.NewForbiddenErrorWithCause(string(ViewOrder), fmt.Errorf("order belongs to another user"))
}
