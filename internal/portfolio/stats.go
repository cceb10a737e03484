// ABOUTME: Admin dashboard counters gathered concurrently from the stats endpoints
// ABOUTME: Counters are cached like any other query

package portfolio

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/markalston/portfolio-admin/internal/cache"
	"github.com/markalston/portfolio-admin/internal/client"
)

// Stats is the summary shown on the dashboard
type Stats struct {
	Projects         int64 `json:"projects"`
	FeaturedProjects int64 `json:"featuredProjects"`
	PublishedBlogs   int64 `json:"publishedBlogs"`
	BlogViews        int64 `json:"blogViews"`
	Skills           int64 `json:"skills"`
	Languages        int64 `json:"languages"`
}

// StatsService reads the admin counters
type StatsService struct {
	api   *client.Client
	cache *cache.Cache
}

// Summary fetches all counters. Requests run concurrently; the first
// failure is returned once all have finished.
func (s *StatsService) Summary(ctx context.Context) (Stats, error) {
	var st Stats
	counters := []struct {
		path string
		dst  *int64
	}{
		{"/projects/stats/count", &st.Projects},
		{"/projects/stats/featured-count", &st.FeaturedProjects},
		{"/blogs/stats/published-count", &st.PublishedBlogs},
		{"/blogs/stats/total-views", &st.BlogViews},
		{"/skills/stats/count", &st.Skills},
		{"/languages/stats/count", &st.Languages},
	}

	// No derived context: a failure must not cancel siblings, or each
	// canceled call would produce its own notification
	var g errgroup.Group
	for _, c := range counters {
		g.Go(func() error {
			n, err := query[int64](ctx, s.api, s.cache, c.path, nil)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return st, nil
}
