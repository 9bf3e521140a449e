package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleCounsellor = "counsellor"
)

// User models an authenticated actor: an admin or a counsellor responsible
// for student registration, visits, and book distribution.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Centre       string    `json:"centre,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsKnownRole reports whether role is one the system issues.
func IsKnownRole(role string) bool {
	return role == RoleAdmin || role == RoleCounsellor
}
