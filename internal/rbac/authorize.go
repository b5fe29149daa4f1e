package rbac

import (
	"fmt"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// Authorize decides whether the resolved principal may exercise perm.
//
// Super admins pass unconditionally; their effective permission set is the
// universal {*}. Otherwise the principal must carry a role granting perm.
// The role was resolved once by the identity middleware; a role id that no
// longer matches a stored role denies as "invalid role".
func Authorize(p *shared.Principal, perm shared.Permission) error {
	if p == nil {
		return shared.ErrUnauthenticated
	}
	if p.IsSuperAdmin {
		return nil
	}
	if p.RoleID == "" {
		return shared.ErrNoRole
	}
	if p.RoleMissing {
		return shared.ErrInvalidRole
	}
	if !p.HasPermission(perm) {
		return fmt.Errorf("%w: %s required", shared.ErrMissingPermission, perm)
	}
	return nil
}

// AuthorizeAny allows when the principal holds any of the listed
// permissions. An empty requirement list always allows; such routes are
// public within authentication.
func AuthorizeAny(p *shared.Principal, perms ...shared.Permission) error {
	if len(perms) == 0 {
		if p == nil {
			return shared.ErrUnauthenticated
		}
		return nil
	}
	var firstDeny error
	for _, perm := range perms {
		err := Authorize(p, perm)
		if err == nil {
			return nil
		}
		if firstDeny == nil {
			firstDeny = err
		}
	}
	return firstDeny
}
