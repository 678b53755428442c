package policy

import (
	"testing"

	"github.com/matinfathi/oo-backend/internal/model"
)

func TestAuthorize_UserManagement(t *testing.T) {
	admin := &Principal{UserID: 1, Role: model.RoleSuperAdmin}
	owner := &Principal{UserID: 2, Role: model.RoleOwner}
	customer := &Principal{UserID: 3, Role: model.RoleCustomer}

	tests := []struct {
		name   string
		p      *Principal
		action Action
		target Target
		want   Decision
	}{
		{"admin lists users", admin, ActionList, On(ResourceUser), Allow},
		{"admin creates user", admin, ActionCreate, On(ResourceUser), Allow},
		{"admin deletes other user", admin, ActionDelete, OnUser(3), Allow},
		{"admin assigns role", admin, ActionAssignRole, OnUser(3), Allow},
		{"owner lists users", owner, ActionList, On(ResourceUser), Deny},
		{"owner gets other user", owner, ActionGet, OnUser(3), Deny},
		{"owner gets self", owner, ActionGet, OnUser(2), Deny},
		{"customer updates self", customer, ActionUpdate, OnUser(3), Allow},
		{"customer deletes self", customer, ActionDelete, OnUser(3), Allow},
		{"customer updates other", customer, ActionUpdate, OnUser(2), Deny},
		{"customer assigns own role", customer, ActionAssignRole, OnUser(3), Deny},
		{"owner creates user", owner, ActionCreate, On(ResourceUser), Deny},
		{"anonymous lists users", nil, ActionList, On(ResourceUser), Deny},
		{"zero owner id never matches", &Principal{UserID: 0, Role: model.RoleCustomer}, ActionUpdate, OnUser(0), Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.p, tt.action, tt.target); got != tt.want {
				t.Errorf("Authorize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuthorize_Signup(t *testing.T) {
	if Authorize(nil, ActionCreate, On(ResourceSignup)) != Allow {
		t.Error("anonymous signup should be allowed")
	}
	if Authorize(nil, ActionList, On(ResourceSignup)) != Deny {
		t.Error("signup only supports create")
	}
	if SignupRole() != model.RoleCustomer {
		t.Errorf("SignupRole() = %q, want Customer", SignupRole())
	}
}

func TestAuthorize_Catalog(t *testing.T) {
	resources := []Resource{ResourceMenu, ResourceLocation, ResourceCategory, ResourceItem, ResourceOptionGroup, ResourceOption}
	actions := []Action{ActionList, ActionGet, ActionCreate, ActionUpdate, ActionDelete}

	for _, res := range resources {
		for _, act := range actions {
			if Authorize(&Principal{UserID: 9, Role: model.RoleCustomer}, act, On(res)) != Deny {
				t.Errorf("customer %s %s should be denied", act, res)
			}
			if Authorize(&Principal{UserID: 8, Role: model.RoleOwner}, act, On(res)) != Allow {
				t.Errorf("owner %s %s should be allowed", act, res)
			}
			if Authorize(&Principal{UserID: 1, Role: model.RoleSuperAdmin}, act, On(res)) != Allow {
				t.Errorf("super admin %s %s should be allowed", act, res)
			}
			if Authorize(nil, act, On(res)) != Deny {
				t.Errorf("anonymous %s %s should be denied", act, res)
			}
		}
	}
}

// 当前没有按归属限制：任何 Owner 都能修改别人的菜单内容
func TestAuthorize_CatalogHasNoOwnerScoping(t *testing.T) {
	otherOwner := &Principal{UserID: 42, Role: model.RoleOwner}
	if Authorize(otherOwner, ActionDelete, Target{Resource: ResourceMenu, OwnerID: 7}) != Allow {
		t.Error("owner scoping is not enforced yet; this test pins the current behaviour")
	}
}

func TestAuthorize_UnknownRoleDenied(t *testing.T) {
	p := &Principal{UserID: 5, Role: model.Role("Root")}
	if Authorize(p, ActionGet, On(ResourceMenu)) != Deny {
		t.Error("unknown role must be denied")
	}
	if Authorize(p, ActionUpdate, OnUser(5)) != Deny {
		t.Error("unknown role must be denied even on self")
	}
}
