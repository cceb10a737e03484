// ABOUTME: Entry point bundling every portfolio content service
// ABOUTME: All services share one API client and one query cache

package portfolio

import (
	"github.com/markalston/portfolio-admin/internal/cache"
	"github.com/markalston/portfolio-admin/internal/client"
)

// Services groups the content services
type Services struct {
	Projects  *Projects
	Blogs     *Blogs
	Skills    *Skills
	Languages *Languages
	Users     *Users
	AI        *AI
	Files     *Files
	Stats     *StatsService

	cache *cache.Cache
}

// New creates the services on top of api, caching reads in c
func New(api *client.Client, c *cache.Cache) *Services {
	return &Services{
		Projects:  newProjects(api, c),
		Blogs:     newBlogs(api, c),
		Skills:    newSkills(api, c),
		Languages: newLanguages(api, c),
		Users:     newUsers(api, c),
		AI:        &AI{api: api},
		Files:     &Files{api: api},
		Stats:     &StatsService{api: api, cache: c},
		cache:     c,
	}
}

// Invalidate drops every cached query, e.g. when the session changes
func (s *Services) Invalidate() {
	s.cache.Flush()
}
