package model

import "time"

// User represents an application user record as stored in the `users`
// table. Emails are stored lowercased so uniqueness is case-insensitive.
// PasswordHash holds the bcrypt digest; the plaintext is never persisted
// and the hash is never included in API responses.
//
// Role is populated by repository queries that join the roles table. It
// may be nil for a row loaded without the join, in which case permission
// checks answer false.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email (lowercased, unique)
	Username     string    // users.username (unique)
	ImageURL     string    // users.user_image_url
	PasswordHash string    // users.password_hash (bcrypt)
	RoleID       uint64    // users.role_id (references roles.id)
	Role         *Role     // joined role row, nil if not loaded
	CreatedAt    time.Time // users.created_at
}

// Role represents a row in the `roles` table: a named bundle of permission
// bits. Exactly one role carries IsDefault=true and is assigned to new
// users whose email does not match the configured administrator address.
type Role struct {
	ID          uint64     // roles.id
	Name        string     // roles.name (unique)
	Permissions Permission // roles.permissions bitmask
	IsDefault   bool       // roles.is_default
}

// HasPermission reports whether the user's role grants the permission.
// Users without a loaded role have no permissions.
func (u *User) HasPermission(p Permission) bool {
	return u.Role != nil && u.Role.Has(p)
}

// IsAdministrator reports whether the user holds the ADMIN bit.
func (u *User) IsAdministrator() bool {
	return u.HasPermission(PermissionAdmin)
}

// IsElevated reports whether the user holds ADMIN or MODERATE, the two
// bits that bypass ownership checks on comments and user records.
func (u *User) IsElevated() bool {
	return u.HasPermission(PermissionAdmin) || u.HasPermission(PermissionModerate)
}
