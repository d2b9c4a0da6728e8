package entity

import (
	"time"
)

// DefaultRole is assigned at registration.
const DefaultRole = "employee"

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field
//
// Users are created once at registration; only Role may change afterwards.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
