package auth

import "github.com/gearguard/maintenance-service/internal/domain"

// Capability is a named permission flag gating an action.
type Capability string

const (
	CanManageUsers        Capability = "canManageUsers"
	CanManageTeams        Capability = "canManageTeams"
	CanManageEquipment    Capability = "canManageEquipment"
	CanManageAllRequests  Capability = "canManageAllRequests"
	CanAssignTechnicians  Capability = "canAssignTechnicians"
	CanDeleteRequests     Capability = "canDeleteRequests"
	CanViewDashboard      Capability = "canViewDashboard"
	CanScrapEquipment     Capability = "canScrapEquipment"
	CanCreateRequests     Capability = "canCreateRequests"
	CanPickTasks          Capability = "canPickTasks"
	CanUpdateAssignedTasks Capability = "canUpdateAssignedTasks"
)

// rolePermissions is the single source of truth for role capabilities.
// Absent capabilities are false (closed world).
var rolePermissions = map[domain.Role]map[Capability]bool{
	domain.RoleAdmin: {
		CanManageUsers:       true,
		CanManageTeams:       true,
		CanManageEquipment:   true,
		CanManageAllRequests: true,
		CanAssignTechnicians: true,
		CanDeleteRequests:    true,
		CanViewDashboard:     true,
		CanScrapEquipment:    true,
		CanCreateRequests:    true,
	},
	domain.RoleManager: {
		CanManageUsers:       false,
		CanManageTeams:       true,
		CanManageEquipment:   true,
		CanManageAllRequests: true,
		CanAssignTechnicians: true,
		CanDeleteRequests:    true,
		CanViewDashboard:     true,
		CanScrapEquipment:    true,
		CanCreateRequests:    true,
	},
	domain.RoleTechnician: {
		CanManageUsers:         false,
		CanManageTeams:         false,
		CanManageEquipment:     false,
		CanManageAllRequests:   false,
		CanAssignTechnicians:   false,
		CanDeleteRequests:      false,
		CanViewDashboard:       true,
		CanScrapEquipment:      false,
		CanPickTasks:           true,
		CanUpdateAssignedTasks: true,
		CanCreateRequests:      true,
	},
	domain.RoleUser: {
		CanManageUsers:       false,
		CanManageTeams:       false,
		CanManageEquipment:   false,
		CanManageAllRequests: false,
		CanAssignTechnicians: false,
		CanDeleteRequests:    false,
		CanViewDashboard:     false,
		CanScrapEquipment:    false,
		CanCreateRequests:    true,
	},
}

// PermissionsFor returns the capability table for a role. Unknown roles get
// an empty table.
func PermissionsFor(role domain.Role) map[Capability]bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return map[Capability]bool{}
	}
	out := make(map[Capability]bool, len(perms))
	for capability, allowed := range perms {
		out[capability] = allowed
	}
	return out
}

// Can reports whether the role holds the capability. Pure function of role;
// anything not explicitly granted is denied.
func Can(role domain.Role, capability Capability) bool {
	return rolePermissions[role][capability]
}
