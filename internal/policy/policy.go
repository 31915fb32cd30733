// Package policy decides which actor may perform which order, cart and role operation.
// Decisions are pure: callers resolve roles first and pass them in through Actor.
package policy

import (
	"sort"
	"strings"

	"littlelemon/internal/models"
)

// Operation is an action gated by the policy.
type Operation int

const (
	OpListOrders Operation = iota
	OpReadOrder
	OpPlaceOrder
	OpUpdateOrder
	OpDeleteOrder
	OpManageCart
	OpManageRoles
	OpManageMenu
)

// Order fields as they appear in an update request.
const (
	FieldStatus       = "status"
	FieldDeliveryCrew = "delivery_crew"
)

var mutableFields = map[string]bool{
	FieldStatus:       true,
	FieldDeliveryCrew: true,
}

var readOnlyFields = map[string]bool{
	"id":          true,
	"user":        true,
	"total":       true,
	"date":        true,
	"order_items": true,
}

// Actor is the caller of an operation together with the roles it holds.
type Actor struct {
	UserID string
	Roles  []models.Role
}

// Authenticated reports whether the actor is a known user.
func (a Actor) Authenticated() bool {
	return a.UserID != ""
}

// Has reports whether the actor holds role.
func (a Actor) Has(role models.Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsManager is shorthand for Has(models.RoleManager).
func (a Actor) IsManager() bool { return a.Has(models.RoleManager) }

// IsDeliveryCrew is shorthand for Has(models.RoleDeliveryCrew).
func (a Actor) IsDeliveryCrew() bool { return a.Has(models.RoleDeliveryCrew) }

// Target describes the order an operation applies to. Fields lists the keys of an update request.
type Target struct {
	OwnerID        string
	DeliveryCrewID *string
	Fields         []string
}

// DenyKind tells the caller how to surface a denial.
type DenyKind int

const (
	DenyForbidden DenyKind = iota
	DenyValidation
	DenyUnauthenticated
)

// Decision is the outcome of Decide.
type Decision struct {
	Allowed bool
	Kind    DenyKind
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func forbid(reason string) Decision {
	return Decision{Kind: DenyForbidden, Reason: reason}
}

func invalid(reason string) Decision {
	return Decision{Kind: DenyValidation, Reason: reason}
}

// Scope is the visibility of an order listing.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeAll
	ScopeAssigned
	ScopeOwn
)

// ListScope returns which orders the actor sees in a listing.
func ListScope(actor Actor) Scope {
	switch {
	case !actor.Authenticated():
		return ScopeNone
	case actor.IsManager():
		return ScopeAll
	case actor.IsDeliveryCrew():
		return ScopeAssigned
	default:
		return ScopeOwn
	}
}

// Decide evaluates op for actor against target. Rules apply in priority order:
// managers, delivery crew, other authenticated users, anonymous callers.
func Decide(actor Actor, op Operation, target Target) Decision {
	if !actor.Authenticated() {
		return Decision{Kind: DenyUnauthenticated, Reason: "authentication required"}
	}

	if actor.IsManager() {
		if op == OpUpdateOrder {
			return checkFields(target.Fields)
		}
		return allow()
	}

	switch op {
	case OpListOrders, OpPlaceOrder, OpManageCart:
		return allow()
	case OpReadOrder:
		if target.OwnerID == actor.UserID {
			return allow()
		}
		return forbid("not the owner of this order")
	case OpUpdateOrder:
		if !actor.IsDeliveryCrew() {
			return forbid("only managers and delivery crew may update orders")
		}
		if len(target.Fields) != 1 || target.Fields[0] != FieldStatus {
			return invalid("delivery crew can only update status")
		}
		if target.DeliveryCrewID == nil || *target.DeliveryCrewID != actor.UserID {
			return forbid("order is not assigned to this delivery crew member")
		}
		return allow()
	case OpDeleteOrder:
		return forbid("only managers may delete orders")
	case OpManageRoles:
		return forbid("only managers may manage roles")
	case OpManageMenu:
		return forbid("only managers may edit the menu")
	default:
		return forbid("unknown operation")
	}
}

// checkFields accepts a non-empty change-set made only of mutable fields.
func checkFields(fields []string) Decision {
	if len(fields) == 0 {
		return invalid("no fields to update")
	}
	var readOnly, unknown []string
	for _, f := range fields {
		switch {
		case mutableFields[f]:
		case readOnlyFields[f]:
			readOnly = append(readOnly, f)
		default:
			unknown = append(unknown, f)
		}
	}
	if len(readOnly) > 0 {
		sort.Strings(readOnly)
		return invalid(strings.Join(readOnly, ", ") + " cannot be changed")
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return invalid("unknown field " + strings.Join(unknown, ", "))
	}
	return allow()
}
