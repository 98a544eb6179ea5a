package domain

import (
	"errors"
	"time"
)

// Role is the closed set of team roles. A freshly registered user holds
// RoleNone until an admin grants a real role.
type Role string

const (
	RoleNone      Role = "none"
	RoleStaff     Role = "staff"
	RoleDeveloper Role = "developer"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is a known role value.
func (r Role) Valid() bool {
	switch r {
	case RoleNone, RoleStaff, RoleDeveloper, RoleAdmin:
		return true
	}
	return false
}

// EligibleAssignee reports whether a user with this role may be assigned tasks.
func (r Role) EligibleAssignee() bool {
	return r == RoleDeveloper || r == RoleAdmin
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrDiscordLinked      = errors.New("discord account already linked to another user")
)

// User models a team member. At most one user may hold a given DiscordID;
// the user directory enforces that on link.
type User struct {
	ID              int64     `json:"id" bson:"_id"`
	Username        string    `json:"username" bson:"username"`
	Email           string    `json:"email,omitempty" bson:"email"`
	PasswordHash    string    `json:"-" bson:"password_hash"`
	Role            Role      `json:"role" bson:"role"`
	DiscordID       string    `json:"discord_id,omitempty" bson:"discord_id,omitempty"`
	DiscordUsername string    `json:"discord_username,omitempty" bson:"discord_username,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// DiscordLinked reports whether the user has a linked Discord identity.
func (u *User) DiscordLinked() bool {
	return u.DiscordID != ""
}
