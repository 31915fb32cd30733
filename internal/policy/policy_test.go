package policy_test

import (
	"testing"

	"littlelemon/internal/models"
	"littlelemon/internal/policy"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

var (
	manager  = policy.Actor{UserID: "m-1", Roles: []models.Role{models.RoleManager}}
	crew     = policy.Actor{UserID: "c-1", Roles: []models.Role{models.RoleDeliveryCrew}}
	customer = policy.Actor{UserID: "u-1"}
	stranger = policy.Actor{UserID: "u-2"}
	anon     = policy.Actor{}
)

func TestDecide(t *testing.T) {
	owned := policy.Target{OwnerID: "u-1", DeliveryCrewID: ptr("c-1")}
	unassigned := policy.Target{OwnerID: "u-1"}

	tests := []struct {
		name    string
		actor   policy.Actor
		op      policy.Operation
		target  policy.Target
		allowed bool
		kind    policy.DenyKind
		reason  string
	}{
		{"manager reads any order", manager, policy.OpReadOrder, owned, true, 0, ""},
		{"manager deletes", manager, policy.OpDeleteOrder, owned, true, 0, ""},
		{"manager manages roles", manager, policy.OpManageRoles, policy.Target{}, true, 0, ""},
		{"manager updates status and crew", manager, policy.OpUpdateOrder,
			policy.Target{OwnerID: "u-1", Fields: []string{"status", "delivery_crew"}}, true, 0, ""},
		{"manager cannot change total", manager, policy.OpUpdateOrder,
			policy.Target{Fields: []string{"status", "total"}}, false, policy.DenyValidation, "total cannot be changed"},
		{"manager unknown field", manager, policy.OpUpdateOrder,
			policy.Target{Fields: []string{"colour"}}, false, policy.DenyValidation, "unknown field colour"},
		{"manager empty change-set", manager, policy.OpUpdateOrder,
			policy.Target{}, false, policy.DenyValidation, "no fields to update"},

		{"crew updates status of assigned order", crew, policy.OpUpdateOrder,
			policy.Target{DeliveryCrewID: ptr("c-1"), Fields: []string{"status"}}, true, 0, ""},
		{"crew two fields", crew, policy.OpUpdateOrder,
			policy.Target{DeliveryCrewID: ptr("c-1"), Fields: []string{"status", "delivery_crew"}},
			false, policy.DenyValidation, "delivery crew can only update status"},
		{"crew non-status field", crew, policy.OpUpdateOrder,
			policy.Target{DeliveryCrewID: ptr("c-1"), Fields: []string{"total"}},
			false, policy.DenyValidation, "delivery crew can only update status"},
		{"crew unassigned order", crew, policy.OpUpdateOrder,
			policy.Target{DeliveryCrewID: ptr("c-9"), Fields: []string{"status"}}, false, policy.DenyForbidden, ""},
		{"crew cannot read others order", crew, policy.OpReadOrder, owned, false, policy.DenyForbidden, ""},
		{"crew cannot delete", crew, policy.OpDeleteOrder, owned, false, policy.DenyForbidden, ""},
		{"crew cannot manage roles", crew, policy.OpManageRoles, policy.Target{}, false, policy.DenyForbidden, ""},

		{"owner reads", customer, policy.OpReadOrder, unassigned, true, 0, ""},
		{"customer places order", customer, policy.OpPlaceOrder, policy.Target{}, true, 0, ""},
		{"customer manages own cart", customer, policy.OpManageCart, policy.Target{}, true, 0, ""},
		{"customer cannot update", customer, policy.OpUpdateOrder,
			policy.Target{OwnerID: "u-1", Fields: []string{"status"}}, false, policy.DenyForbidden, ""},
		{"customer cannot delete own order", customer, policy.OpDeleteOrder, unassigned, false, policy.DenyForbidden, ""},
		{"customer cannot edit menu", customer, policy.OpManageMenu, policy.Target{}, false, policy.DenyForbidden, ""},
		{"stranger cannot read", stranger, policy.OpReadOrder, unassigned, false, policy.DenyForbidden, ""},

		{"anonymous denied", anon, policy.OpListOrders, policy.Target{}, false, policy.DenyUnauthenticated, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := policy.Decide(tt.actor, tt.op, tt.target)
			assert.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.kind, d.Kind)
			}
			if tt.reason != "" {
				assert.Equal(t, tt.reason, d.Reason)
			}
		})
	}
}

func TestListScope(t *testing.T) {
	assert.Equal(t, policy.ScopeAll, policy.ListScope(manager))
	assert.Equal(t, policy.ScopeAssigned, policy.ListScope(crew))
	assert.Equal(t, policy.ScopeOwn, policy.ListScope(customer))
	assert.Equal(t, policy.ScopeNone, policy.ListScope(anon))

	both := policy.Actor{UserID: "x", Roles: []models.Role{models.RoleDeliveryCrew, models.RoleManager}}
	assert.Equal(t, policy.ScopeAll, policy.ListScope(both))
}
