// Package access decides whether a user may pass a role gate. It knows nothing
// about HTTP or storage: callers look the user and attachment record up and
// hand them in.
package access

import "valet_parking/internal/domain"

type Decision int

const (
	Allow Decision = iota
	Forbidden
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	}
	return "unknown"
}

type Gate struct {
	Name  string
	Roles []domain.Role
	// Attachment names the role-attachment table whose approved row the gate requires.
	// Empty means the role tag alone is enough.
	Attachment domain.StaffKind
}

var (
	DriverGate = Gate{
		Name:       "driver",
		Roles:      []domain.Role{domain.RoleDriver, domain.RoleManager, domain.RoleSuperAdmin},
		Attachment: domain.StaffDriver,
	}
	ManagerGate = Gate{
		Name:       "manager",
		Roles:      []domain.Role{domain.RoleManager},
		Attachment: domain.StaffManager,
	}
	SuperAdminGate = Gate{
		Name:  "superadmin",
		Roles: []domain.Role{domain.RoleSuperAdmin},
	}
)

func (g Gate) accepts(role domain.Role) bool {
	for _, r := range g.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Evaluate checks the role tag first, then the attachment record (nil when absent).
func Evaluate(g Gate, role domain.Role, record *domain.StaffRecord) Decision {
	if !g.accepts(role) {
		return Forbidden
	}
	if g.Attachment == "" {
		return Allow
	}
	if record == nil {
		return NotFound
	}
	if !record.Approved {
		return Forbidden
	}
	return Allow
}
