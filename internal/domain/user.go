package domain

import "time"

type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleTenant  Role = "tenant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleTenant:
		return true
	}
	return false
}

// CanManage reports whether the role may create users, properties and contracts.
func (r Role) CanManage() bool { return r == RoleOwner || r == RoleManager }

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser carries the caller-supplied fields of a user; id and created_at are assigned by the store.
type NewUser struct {
	Name  string
	Email string
	Role  Role
	Phone string
}

// Identity is the subset of a user bound to an authenticated session.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

func (u User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
