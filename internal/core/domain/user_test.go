package domain

import "testing"

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		role       Role
		author     bool
		bypass     bool
		administer bool
	}{
		{RoleStudent, false, false, false},
		{RoleCR, true, false, false},
		{RoleSystemAdmin, true, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.CanAuthorContent(); got != tt.author {
				t.Fatalf("CanAuthorContent() = %v, want %v", got, tt.author)
			}
			if got := tt.role.CanBypassScope(); got != tt.bypass {
				t.Fatalf("CanBypassScope() = %v, want %v", got, tt.bypass)
			}
			if got := tt.role.CanAdminister(); got != tt.administer {
				t.Fatalf("CanAdminister() = %v, want %v", got, tt.administer)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleStudent, RoleCR, RoleSystemAdmin} {
		if !role.Valid() {
			t.Fatalf("role %s reported invalid", role)
		}
	}
	if Role("MODERATOR").Valid() {
		t.Fatal("unknown role reported valid")
	}
	if Role("").Valid() {
		t.Fatal("empty role reported valid")
	}
}

func TestDepartmentName(t *testing.T) {
	name, ok := DepartmentName("04")
	if !ok || name != "Computer Science & Engineering" {
		t.Fatalf("DepartmentName(04) = %q, %v", name, ok)
	}

	if _, ok := DepartmentName("99"); ok {
		t.Fatal("unknown department code resolved to a name")
	}
	if _, ok := DepartmentName("4"); ok {
		t.Fatal("unpadded code resolved to a name")
	}
}

func TestDepartmentCodesRoundTrip(t *testing.T) {
	codes := DepartmentCodes()
	if len(codes) != 13 {
		t.Fatalf("expected 13 department codes, got %d", len(codes))
	}
	for _, code := range codes {
		if len(code) != 2 {
			t.Fatalf("department code %q is not zero-padded two digits", code)
		}
		if _, ok := DepartmentName(code); !ok {
			t.Fatalf("code %q has no display name", code)
		}
	}
}
