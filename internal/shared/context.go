package shared

import "context"

// Principal is the request-scoped view of the authenticated actor. It is
// resolved once per request and threaded through the guard chain so
// downstream checks never re-fetch the user or role.
type Principal struct {
	UserID string
	Email  string
	Name   string
	RoleID string
	// RoleMissing is set when RoleID references a role that no longer
	// exists, which downstream checks treat as an invalid role.
	RoleMissing  bool
	Entity       EntityRef
	IsSuperAdmin bool
	Permissions  []Permission
}

// HasPermission reports whether the principal's resolved permission set
// contains perm. Super admins hold the universal set.
func (p *Principal) HasPermission(perm Permission) bool {
	if p == nil {
		return false
	}
	if p.IsSuperAdmin {
		return true
	}
	for _, granted := range p.Permissions {
		if granted == perm {
			return true
		}
	}
	return false
}

type userIDContextKey struct{}

type principalContextKey struct{}

// ContextWithUserID stores the verified token subject in context.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// UserIDFromContext extracts the verified token subject.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDContextKey{}).(string)
	return id, ok && id != ""
}

// ContextWithPrincipal stores the resolved principal in context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the resolved principal.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}
