package messaging

import "mhimmo/internal/domain"

// counterparts is the visibility matrix: which roles a viewer may message.
var counterparts = map[domain.Role][]domain.Role{
	domain.RoleTenant:  {domain.RoleManager},
	domain.RoleManager: {domain.RoleOwner, domain.RoleTenant},
	domain.RoleOwner:   {domain.RoleOwner, domain.RoleManager, domain.RoleTenant},
}

// CanMessage reports whether a viewer holding from may see and message a user holding to.
func CanMessage(from, to domain.Role) bool {
	for _, r := range counterparts[from] {
		if r == to {
			return true
		}
	}
	return false
}

// Candidates returns every user other than viewer permitted by the matrix,
// in insertion order.
func Candidates(users []domain.User, viewer domain.User) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.ID == viewer.ID || !CanMessage(viewer.Role, u.Role) {
			continue
		}
		out = append(out, u)
	}
	return out
}
