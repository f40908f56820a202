package models

import "time"

const (
	RoleStudent = "student"
	RoleCreator = "creator"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleCreator
}

type User struct {
	ID        uint64    `db:"id"`
	Email     string    `db:"email"`
	Password  string    `db:"password"` // bcrypt hash
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DisplayName derives the name shown in the UI from the local part of the email.
func (u *User) DisplayName() string {
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}
