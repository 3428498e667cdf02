package model

// Permission is a single capability bit. Roles combine permissions into a
// bitmask, so every value must be a distinct power of two.
type Permission uint8

const (
	PermissionFollow   Permission = 1 << iota // follow other users
	PermissionComment                         // comment on posts
	PermissionWrite                           // create and edit own posts
	PermissionModerate                        // moderate content owned by others
	PermissionAdmin                           // full administrative access
)

// Add sets the permission bit on the role. Adding a bit that is already
// present is a no-op.
func (r *Role) Add(p Permission) {
	r.Permissions |= p
}

// Remove clears the permission bit on the role. Removing an absent bit is a
// no-op.
func (r *Role) Remove(p Permission) {
	r.Permissions &^= p
}

// Has reports whether every bit of p is present in the role's bitmask.
func (r *Role) Has(p Permission) bool {
	return r.Permissions&p == p
}

// Reset clears all permission bits. Seeding calls this before re-adding the
// configured permissions so that re-runs never double-accumulate bits.
func (r *Role) Reset() {
	r.Permissions = 0
}
