package domain

import "github.com/google/uuid"

// Principal is the authenticated caller's resolved identity for the current
// request: user fields plus the permission set reachable through the user's
// role. It is derived per request and never persisted.
type Principal struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Disabled    bool      `json:"disabled"`
	Permissions []string  `json:"permissions"`
}

// HasPermission reports whether the principal holds the named permission.
func (p *Principal) HasPermission(name string) bool {
	for _, perm := range p.Permissions {
		if perm == name {
			return true
		}
	}
	return false
}

// HasAny reports whether the principal holds at least one of the named
// permissions.
func (p *Principal) HasAny(names ...string) bool {
	for _, name := range names {
		if p.HasPermission(name) {
			return true
		}
	}
	return false
}
