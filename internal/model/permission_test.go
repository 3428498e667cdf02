package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAddRemoveHas(t *testing.T) {
	r := &Role{Name: "User"}

	assert.False(t, r.Has(PermissionFollow))

	r.Add(PermissionFollow)
	r.Add(PermissionComment)
	assert.True(t, r.Has(PermissionFollow))
	assert.True(t, r.Has(PermissionComment))
	assert.False(t, r.Has(PermissionWrite))

	// adding twice is a no-op
	before := r.Permissions
	r.Add(PermissionFollow)
	assert.Equal(t, before, r.Permissions)

	r.Remove(PermissionFollow)
	assert.False(t, r.Has(PermissionFollow))
	assert.True(t, r.Has(PermissionComment))

	// removing an absent bit is a no-op
	before = r.Permissions
	r.Remove(PermissionAdmin)
	assert.Equal(t, before, r.Permissions)
}

func TestRoleHasRequiresEveryBit(t *testing.T) {
	r := &Role{}
	r.Add(PermissionFollow)
	r.Add(PermissionWrite)

	assert.True(t, r.Has(PermissionFollow|PermissionWrite))
	assert.False(t, r.Has(PermissionFollow|PermissionComment))
}

func TestRoleReset(t *testing.T) {
	r := &Role{}
	r.Add(PermissionFollow)
	r.Add(PermissionAdmin)
	r.Reset()

	assert.Equal(t, Permission(0), r.Permissions)
	assert.False(t, r.Has(PermissionFollow))
}

func TestPermissionBitsAreDistinct(t *testing.T) {
	perms := []Permission{
		PermissionFollow,
		PermissionComment,
		PermissionWrite,
		PermissionModerate,
		PermissionAdmin,
	}
	for i, a := range perms {
		for j, b := range perms {
			if i == j {
				continue
			}
			assert.Zero(t, a&b, "permissions %d and %d overlap", a, b)
		}
	}
}

func TestUserPermissionChecks(t *testing.T) {
	mod := &Role{Name: "Moderator"}
	mod.Add(PermissionFollow)
	mod.Add(PermissionComment)
	mod.Add(PermissionWrite)
	mod.Add(PermissionModerate)

	u := &User{Role: mod}
	assert.True(t, u.HasPermission(PermissionModerate))
	assert.True(t, u.IsElevated())
	assert.False(t, u.IsAdministrator())

	// a user loaded without its role has no permissions at all
	bare := &User{}
	assert.False(t, bare.HasPermission(PermissionFollow))
	assert.False(t, bare.IsElevated())
}
