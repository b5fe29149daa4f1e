package rbac

import "github.com/mealdesk/mealdesk/internal/shared"

// ScopePolicy names the decision for actors without an entity binding.
// Platform-level roles (System scope, no entity id) are not tenant-bound;
// AllowUnscopedActors lets them through to whatever the permission
// resolver already decided, matching the seeded "auditor style" roles.
type ScopePolicy int

const (
	// AllowUnscopedActors grants unbound actors global reach, gated only
	// by their permissions.
	AllowUnscopedActors ScopePolicy = iota
	// DenyUnscopedActors would reject unbound non-super-admin actors
	// outright. Not active; kept so the fallthrough stays a named choice.
	DenyUnscopedActors
)

// DefaultScopePolicy is applied by CheckOwnership and NarrowScope.
const DefaultScopePolicy = AllowUnscopedActors

// CheckOwnership enforces entity-scoped data isolation for writes and
// deletes, where the actor named a specific resource. Super admins always
// pass. Entity-bound actors must match the record's owner exactly.
func CheckOwnership(p *shared.Principal, owner shared.EntityRef) error {
	return checkOwnership(p, owner, DefaultScopePolicy)
}

func checkOwnership(p *shared.Principal, owner shared.EntityRef, policy ScopePolicy) error {
	if p == nil {
		return shared.ErrUnauthenticated
	}
	if p.IsSuperAdmin {
		return nil
	}
	if !p.Entity.Bound() {
		if policy == DenyUnscopedActors {
			return shared.ErrEntityMismatch
		}
		return nil
	}
	if p.Entity.Type == owner.Type && p.Entity.ID == owner.ID {
		return nil
	}
	return shared.ErrEntityMismatch
}

// NarrowScope returns the entity filter for list reads. Scoped actors see
// only their own entity's rows; super admins and unbound actors see
// everything. Reads narrow silently instead of erroring.
func NarrowScope(p *shared.Principal) (shared.EntityRef, bool) {
	if p == nil || p.IsSuperAdmin || !p.Entity.Bound() {
		return shared.EntityRef{}, false
	}
	return p.Entity, true
}
