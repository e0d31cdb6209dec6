package users

import "testing"

func TestPrimaryRole(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  string
	}{
		{"empty list defaults to receptionist", nil, RoleReceptionist},
		{"unknown roles default to receptionist", []string{"JANITOR"}, RoleReceptionist},
		{"single role", []string{"VETERINARIAN"}, RoleVeterinarian},
		{"admin beats veterinarian", []string{"VETERINARIAN", "ADMIN"}, RoleAdmin},
		{"owner beats admin", []string{"ADMIN", "OWNER"}, RoleOwner},
		{"owner beats everything", []string{"RECEPTIONIST", "VETERINARIAN", "ADMIN", "OWNER"}, RoleOwner},
		{"ROLE_ prefix is tolerated", []string{"ROLE_ADMIN"}, RoleAdmin},
		{"mixed prefixes and case", []string{"role_receptionist", "ROLE_VETERINARIAN"}, RoleVeterinarian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrimaryRole(tt.roles); got != tt.want {
				t.Fatalf("PrimaryRole(%v) = %s, want %s", tt.roles, got, tt.want)
			}
		})
	}
}

func TestHasRole_PrefixTolerant(t *testing.T) {
	u := User{Roles: []string{"ROLE_ADMIN", "VETERINARIAN"}}

	if !u.HasRole("ADMIN") {
		t.Fatalf("expected HasRole(ADMIN) with stored ROLE_ADMIN")
	}
	if !u.HasRole("ROLE_VETERINARIAN") {
		t.Fatalf("expected HasRole(ROLE_VETERINARIAN) with stored VETERINARIAN")
	}
	if u.HasRole("OWNER") {
		t.Fatalf("did not expect HasRole(OWNER)")
	}
}
