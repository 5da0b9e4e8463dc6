package domain

// Identity is the authenticated caller extracted from a verified token:
// just the user id and role, nothing else.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// RequireRole permits the operation only when the identity holds exactly the
// required role. Returns ErrInsufficientRole otherwise.
func (i Identity) RequireRole(required string) error {
	if i.Role != required {
		return ErrInsufficientRole
	}
	return nil
}

// RequireOwnerOrAdmin permits the operation when the identity is an admin or
// owns the resource. An empty ownerID marks an unassigned (catalog) resource,
// which only admins may touch. The error never reveals whether the resource
// exists; callers render a uniform 403.
func (i Identity) RequireOwnerOrAdmin(ownerID string) error {
	if i.IsAdmin() {
		return nil
	}
	if ownerID == "" || i.UserID != ownerID {
		return ErrNotOwner
	}
	return nil
}
