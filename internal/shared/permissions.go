package shared

// Permission names one capability gating an authorization decision.
// The vocabulary is closed: roles are validated against it on write,
// while the resolver simply never matches unknown strings kept in
// existing rows.
type Permission string

const (
	PermManageUsers    Permission = "Manage Users"
	PermManageRoles    Permission = "Manage Roles"
	PermManageHostels  Permission = "Manage Hostels"
	PermManageMembers  Permission = "Manage Members"
	PermViewReports    Permission = "View Reports"
	PermManagePayments Permission = "Manage Payments"
	PermManageFeedback Permission = "Manage Feedback"
	PermViewOwnMeals   Permission = "View Own Meals"
	PermViewAllData    Permission = "View All Data"

	// PermAll is the universal grant reported for super admins. It is
	// never stored on a role.
	PermAll Permission = "*"
)

// KnownPermissions lists the assignable vocabulary.
func KnownPermissions() []Permission {
	return []Permission{
		PermManageUsers,
		PermManageRoles,
		PermManageHostels,
		PermManageMembers,
		PermViewReports,
		PermManagePayments,
		PermManageFeedback,
		PermViewOwnMeals,
		PermViewAllData,
	}
}

// Valid reports whether p belongs to the assignable vocabulary.
func (p Permission) Valid() bool {
	for _, known := range KnownPermissions() {
		if p == known {
			return true
		}
	}
	return false
}

// EntityType tags the tenant unit a record belongs to.
type EntityType string

const (
	EntitySystem     EntityType = "System"
	EntityHostel     EntityType = "Hostel"
	EntityCorporate  EntityType = "Corporate"
	EntityIndividual EntityType = "Individual"
)

// EntityRef identifies one tenant unit.
type EntityRef struct {
	Type EntityType `json:"entityType"`
	ID   string     `json:"entityId"`
}

// Bound reports whether the reference names a concrete entity. Platform
// level actors (System scope without an entity id) are unbound.
func (r EntityRef) Bound() bool {
	return r.Type != "" && r.Type != EntitySystem && r.ID != ""
}
