// ABOUTME: Generic cached CRUD resource over the portfolio REST API
// ABOUTME: Reads go through the query cache; mutations invalidate the resource prefix

package portfolio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/markalston/portfolio-admin/internal/cache"
	"github.com/markalston/portfolio-admin/internal/client"
)

// Resource exposes list/get/create/update/delete for one collection
type Resource[T any, In any] struct {
	api      *client.Client
	cache    *cache.Cache
	base     string // e.g. "/projects"
	listPath string // collection listing, defaults to base
}

func newResource[T any, In any](api *client.Client, c *cache.Cache, base string) *Resource[T, In] {
	return &Resource[T, In]{api: api, cache: c, base: base, listPath: base}
}

// List returns every item of the collection
func (r *Resource[T, In]) List(ctx context.Context) ([]T, error) {
	return query[[]T](ctx, r.api, r.cache, r.listPath, nil)
}

// Get returns one item by ID
func (r *Resource[T, In]) Get(ctx context.Context, id int64) (*T, error) {
	item, err := query[T](ctx, r.api, r.cache, r.itemPath(id), nil)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create posts a new item
func (r *Resource[T, In]) Create(ctx context.Context, in In) (*T, error) {
	var out T
	if err := r.api.Post(ctx, r.base, in, &out); err != nil {
		return nil, err
	}
	r.invalidate()
	return &out, nil
}

// Update replaces the fields set in in
func (r *Resource[T, In]) Update(ctx context.Context, id int64, in In) (*T, error) {
	var out T
	if err := r.api.Put(ctx, r.itemPath(id), in, &out); err != nil {
		return nil, err
	}
	r.invalidate()
	return &out, nil
}

// Delete removes an item
func (r *Resource[T, In]) Delete(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, r.itemPath(id)); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

func (r *Resource[T, In]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.base, id)
}

func (r *Resource[T, In]) invalidate() {
	r.cache.InvalidatePrefix(r.base)
}

// query performs a cached GET and decodes the result into T
func query[T any](ctx context.Context, api *client.Client, c *cache.Cache, path string, q url.Values) (T, error) {
	key := path
	if len(q) > 0 {
		key += "?" + q.Encode()
	}

	v, err := c.GetOrLoad(ctx, key, func(ctx context.Context) (interface{}, error) {
		var out T
		if err := api.Do(ctx, client.NewRequest(http.MethodGet, path, nil).WithQuery(q), &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
