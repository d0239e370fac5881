package model

import "testing"

func TestPermissionsFor(t *testing.T) {
	tests := []struct {
		role                                string
		edit, delete, checkout, manageUsers bool
	}{
		{RoleAdmin, true, true, true, true},
		{RoleLogistics, true, false, true, false},
		{RoleCadet, false, false, true, false},
		// Unknown roles fail-closed.
		{"unknown", false, false, false, false},
		{"", false, false, false, false},
		{"Admin", false, false, false, false},
	}

	for _, tt := range tests {
		p := PermissionsFor(tt.role)
		if p.CanEdit != tt.edit || p.CanDelete != tt.delete || p.CanCheckout != tt.checkout || p.CanManageUsers != tt.manageUsers {
			t.Errorf("PermissionsFor(%q) = %+v", tt.role, p)
		}
		if p.Allows(CapEdit) != tt.edit || p.Allows(CapDelete) != tt.delete ||
			p.Allows(CapCheckout) != tt.checkout || p.Allows(CapManageUsers) != tt.manageUsers {
			t.Errorf("PermissionsFor(%q).Allows disagrees with fields", tt.role)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleAdmin, RoleLogistics, RoleCadet} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false", r)
		}
	}
	for _, r := range []string{"", "user", "manager", "ADMIN"} {
		if ValidRole(r) {
			t.Errorf("ValidRole(%q) = true", r)
		}
	}
}

func TestRoleLabel(t *testing.T) {
	if got := RoleLabel(RoleLogistics); got != "Logistics Officer" {
		t.Errorf("RoleLabel(logistics) = %q", got)
	}
	if got := RoleLabel("quartermaster"); got != "quartermaster" {
		t.Errorf("RoleLabel(unknown) = %q", got)
	}
}
