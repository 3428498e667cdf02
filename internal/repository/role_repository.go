package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openwave/social-network-api/internal/model"
)

// seededRoles is the fixed role table applied at startup. Order inside each
// list is not significant; the bits are OR-combined.
var seededRoles = map[string][]model.Permission{
	"User":          {model.PermissionFollow, model.PermissionComment, model.PermissionWrite},
	"Moderator":     {model.PermissionFollow, model.PermissionComment, model.PermissionWrite, model.PermissionModerate},
	"Administrator": {model.PermissionFollow, model.PermissionComment, model.PermissionWrite, model.PermissionModerate, model.PermissionAdmin},
}

// defaultRoleName is the role assigned to new users whose email does not
// match the configured administrator address.
const defaultRoleName = "User"

// RoleRepo encapsulates queries against the roles table.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// GetByName fetches a role by its unique name.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, permissions, is_default FROM roles WHERE name=? LIMIT 1",
		name).Scan(&role.ID, &role.Name, &role.Permissions, &role.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetDefault fetches the role flagged as default.
func (r *RoleRepo) GetDefault(ctx context.Context) (*model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, permissions, is_default FROM roles WHERE is_default=1 LIMIT 1").
		Scan(&role.ID, &role.Name, &role.Permissions, &role.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// roleStore is the persistence surface the seeding procedure needs.
// RoleRepo satisfies it against MySQL; tests substitute an in-memory
// implementation.
type roleStore interface {
	GetByName(ctx context.Context, name string) (*model.Role, error)
	insertRole(ctx context.Context, role *model.Role) error
	updateRole(ctx context.Context, role *model.Role) error
}

// Seed applies the fixed role table at startup.
func (r *RoleRepo) Seed(ctx context.Context) error {
	return seedRoles(ctx, r)
}

// seedRoles fetches-or-creates each configured role by name, resets the
// bitmask to zero, re-adds each configured permission, and sets the default
// flag iff the name matches defaultRoleName. Running it repeatedly yields
// identical rows: the reset prevents bits from accumulating, and existing
// roles are updated in place.
func seedRoles(ctx context.Context, store roleStore) error {
	for name, perms := range seededRoles {
		role, err := store.GetByName(ctx, name)
		if errors.Is(err, ErrRoleNotFound) {
			role = &model.Role{Name: name}
		} else if err != nil {
			return err
		}

		role.Reset()
		for _, p := range perms {
			role.Add(p)
		}
		role.IsDefault = role.Name == defaultRoleName

		if role.ID == 0 {
			if err := store.insertRole(ctx, role); err != nil {
				return err
			}
		} else {
			if err := store.updateRole(ctx, role); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *RoleRepo) insertRole(ctx context.Context, role *model.Role) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO roles (name, permissions, is_default) VALUES (?,?,?)",
		role.Name, role.Permissions, role.IsDefault)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	role.ID = uint64(id)
	return nil
}

func (r *RoleRepo) updateRole(ctx context.Context, role *model.Role) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE roles SET permissions=?, is_default=? WHERE id=?",
		role.Permissions, role.IsDefault, role.ID)
	return err
}
