package access

import (
	"testing"

	"valet_parking/internal/domain"
)

func TestEvaluateDriverGate(t *testing.T) {
	approved := &domain.StaffRecord{ID: 1, ParkingSpotID: 3, Approved: true}
	for _, role := range []domain.Role{domain.RoleDriver, domain.RoleManager, domain.RoleSuperAdmin} {
		if d := Evaluate(DriverGate, role, approved); d != Allow {
			t.Fatalf("expected %s to pass driver gate, got %s", role, d)
		}
	}
	if d := Evaluate(DriverGate, domain.RoleUser, approved); d != Forbidden {
		t.Fatalf("expected USER to be forbidden, got %s", d)
	}
	if d := Evaluate(DriverGate, domain.RoleDriver, nil); d != NotFound {
		t.Fatalf("expected missing record to be not_found, got %s", d)
	}
	pending := &domain.StaffRecord{ID: 2, Approved: false}
	if d := Evaluate(DriverGate, domain.RoleDriver, pending); d != Forbidden {
		t.Fatalf("expected unapproved driver to be forbidden, got %s", d)
	}
}

func TestEvaluateManagerGate(t *testing.T) {
	approved := &domain.StaffRecord{ID: 1, Approved: true}
	if d := Evaluate(ManagerGate, domain.RoleManager, approved); d != Allow {
		t.Fatalf("expected manager to pass, got %s", d)
	}
	for _, role := range []domain.Role{domain.RoleDriver, domain.RoleSuperAdmin, domain.RoleUser} {
		if d := Evaluate(ManagerGate, role, approved); d != Forbidden {
			t.Fatalf("expected %s to be forbidden at manager gate, got %s", role, d)
		}
	}
	if d := Evaluate(ManagerGate, domain.RoleManager, nil); d != NotFound {
		t.Fatalf("expected not_found, got %s", d)
	}
}

func TestEvaluateSuperAdminGate(t *testing.T) {
	if d := Evaluate(SuperAdminGate, domain.RoleSuperAdmin, nil); d != Allow {
		t.Fatalf("expected superadmin to pass without attachment, got %s", d)
	}
	if d := Evaluate(SuperAdminGate, domain.RoleManager, nil); d != Forbidden {
		t.Fatalf("expected manager to be forbidden, got %s", d)
	}
	if d := Evaluate(SuperAdminGate, "", nil); d != Forbidden {
		t.Fatalf("expected empty role to be forbidden, got %s", d)
	}
}
