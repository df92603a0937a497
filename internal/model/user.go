package model

import "time"

// Role is the access level of a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

// User represents a registered user in the system.
type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Username  string `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email     string `json:"email" gorm:"uniqueIndex;size:254;not null"`
	FirstName string `json:"first_name" gorm:"size:150"`
	LastName  string `json:"last_name" gorm:"size:150"`
	Bio       string `json:"bio" gorm:"type:text"`
	Role      Role   `json:"role" gorm:"size:20;not null;default:'user'"`
	// IsStaff and IsSuperuser grant admin power independently of Role.
	IsStaff     bool `json:"-" gorm:"not null;default:false"`
	IsSuperuser bool `json:"-" gorm:"not null;default:false"`
	// ConfirmationState binds confirmation codes to the user. Rotating it
	// invalidates every previously issued code.
	ConfirmationState string    `json:"-" gorm:"size:36;not null;default:''"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

// IsAdmin reports whether the user holds admin power through role or staff flags.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsStaff || u.IsSuperuser
}

// IsModerator reports whether the user is a moderator.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
