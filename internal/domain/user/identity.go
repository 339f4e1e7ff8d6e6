package user

import "github.com/google/uuid"

// Identity is the authenticated caller as resolved from a bearer credential.
// Accounts themselves live in the identity service.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanAccess reports whether the caller may read a resource owned by ownerID.
func (i Identity) CanAccess(ownerID uuid.UUID) bool {
	return i.IsAdmin() || i.UserID == ownerID
}

func (i Identity) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
