package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a uniqueness violation, e.g. an email already registered.
	ErrDuplicate = errors.New("duplicate")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated covers missing, malformed and expired tokens as
	// well as tokens referencing a user that no longer exists. Callers
	// cannot distinguish the cases.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrNoRole indicates the actor has no role assigned.
	ErrNoRole = errors.New("no role assigned")
	// ErrInvalidRole indicates the actor references a role that does not exist.
	ErrInvalidRole = errors.New("invalid role")
	// ErrMissingPermission indicates the actor's role lacks the required permission.
	ErrMissingPermission = errors.New("permission denied")
	// ErrEntityMismatch indicates the actor named a resource outside its own entity.
	ErrEntityMismatch = errors.New("access denied")
	// ErrSuperAdminProtected indicates a non-super-admin tried to mutate a
	// super-admin account.
	ErrSuperAdminProtected = errors.New("cannot modify super admin")
	// ErrEditWindowExpired indicates a pricing record is past its edit window.
	ErrEditWindowExpired = errors.New("edit window expired")
	// ErrCheckFailed wraps unexpected failures inside an authorization
	// guard. It always denies; a broken check must never pass through.
	ErrCheckFailed = errors.New("authorization check failed")
)

// UserSafeMessage returns a message safe to echo back to clients.
func UserSafeMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrNoRole),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrMissingPermission),
		errors.Is(err, ErrEntityMismatch),
		errors.Is(err, ErrSuperAdminProtected),
		errors.Is(err, ErrEditWindowExpired):
		return err.Error()
	default:
		return "internal error"
	}
}
