package entity

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleOwner UserRole = "OWNER"
	RoleAdmin UserRole = "ADMIN"
)

// IsValid rejects any role outside the closed set
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Address      string   `db:"address"`
	Role         UserRole `db:"role"`
}
