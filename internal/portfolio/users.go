// ABOUTME: User administration service: list, update, delete and role assignment
// ABOUTME: Accounts are created through registration, so there is no Create

package portfolio

import (
	"context"
	"fmt"

	"github.com/markalston/portfolio-admin/internal/cache"
	"github.com/markalston/portfolio-admin/internal/client"
	"github.com/markalston/portfolio-admin/internal/models"
)

// Users manages user accounts (admin only)
type Users struct {
	res *Resource[models.User, models.UserUpdate]
}

func newUsers(api *client.Client, c *cache.Cache) *Users {
	return &Users{res: newResource[models.User, models.UserUpdate](api, c, "/users")}
}

func (u *Users) List(ctx context.Context) ([]models.User, error) {
	return u.res.List(ctx)
}

func (u *Users) Get(ctx context.Context, id int64) (*models.User, error) {
	return u.res.Get(ctx, id)
}

func (u *Users) Update(ctx context.Context, id int64, in models.UserUpdate) (*models.User, error) {
	return u.res.Update(ctx, id, in)
}

func (u *Users) Delete(ctx context.Context, id int64) error {
	return u.res.Delete(ctx, id)
}

// Roles lists the roles assigned to a user
func (u *Users) Roles(ctx context.Context, id int64) ([]models.Role, error) {
	return query[[]models.Role](ctx, u.res.api, u.res.cache, rolesPath(id), nil)
}

// SetRoles replaces the roles of a user by name
func (u *Users) SetRoles(ctx context.Context, id int64, roles []string) ([]models.Role, error) {
	if len(roles) == 0 {
		return nil, fmt.Errorf("at least one role is required")
	}
	var out []models.Role
	if err := u.res.api.Put(ctx, rolesPath(id), models.RolesUpdate{Roles: roles}, &out); err != nil {
		return nil, err
	}
	u.res.invalidate()
	return out, nil
}

func rolesPath(id int64) string {
	return fmt.Sprintf("/users/%d/roles", id)
}
