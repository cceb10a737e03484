// ABOUTME: Projects, blogs, skills and languages services
// ABOUTME: Adds the collection-specific queries on top of the generic resource

package portfolio

import (
	"context"
	"fmt"
	"net/url"

	"github.com/markalston/portfolio-admin/internal/cache"
	"github.com/markalston/portfolio-admin/internal/client"
	"github.com/markalston/portfolio-admin/internal/models"
)

// Projects manages portfolio projects
type Projects struct {
	*Resource[models.Project, models.ProjectInput]
}

func newProjects(api *client.Client, c *cache.Cache) *Projects {
	return &Projects{newResource[models.Project, models.ProjectInput](api, c, "/projects")}
}

// Featured lists projects flagged as featured
func (p *Projects) Featured(ctx context.Context) ([]models.Project, error) {
	return query[[]models.Project](ctx, p.api, p.cache, "/projects/featured", nil)
}

// Active lists projects that are currently shown
func (p *Projects) Active(ctx context.Context) ([]models.Project, error) {
	return query[[]models.Project](ctx, p.api, p.cache, "/projects/active", nil)
}

// Search returns the first page of projects matching keyword
func (p *Projects) Search(ctx context.Context, keyword string) (models.Page[models.Project], error) {
	return query[models.Page[models.Project]](ctx, p.api, p.cache, "/projects/search", url.Values{"keyword": {keyword}})
}

// Blogs manages blog posts. List returns drafts too.
type Blogs struct {
	*Resource[models.Blog, models.BlogInput]
}

func newBlogs(api *client.Client, c *cache.Cache) *Blogs {
	r := newResource[models.Blog, models.BlogInput](api, c, "/blogs")
	r.listPath = "/blogs/admin/all"
	return &Blogs{r}
}

// Published lists only published posts
func (b *Blogs) Published(ctx context.Context) ([]models.Blog, error) {
	return query[[]models.Blog](ctx, b.api, b.cache, "/blogs", nil)
}

// Search returns the first page of posts matching keyword
func (b *Blogs) Search(ctx context.Context, keyword string) (models.Page[models.Blog], error) {
	return query[models.Page[models.Blog]](ctx, b.api, b.cache, "/blogs/search", url.Values{"keyword": {keyword}})
}

// Skills manages skills
type Skills struct {
	*Resource[models.Skill, models.SkillInput]
}

func newSkills(api *client.Client, c *cache.Cache) *Skills {
	return &Skills{newResource[models.Skill, models.SkillInput](api, c, "/skills")}
}

// ByLevel lists skills at exactly level
func (s *Skills) ByLevel(ctx context.Context, level int) ([]models.Skill, error) {
	if level < 1 || level > 100 {
		return nil, fmt.Errorf("level must be between 1 and 100, got %d", level)
	}
	return query[[]models.Skill](ctx, s.api, s.cache, fmt.Sprintf("/skills/level/%d", level), nil)
}

// Search lists skills whose name matches keyword
func (s *Skills) Search(ctx context.Context, keyword string) ([]models.Skill, error) {
	return query[[]models.Skill](ctx, s.api, s.cache, "/skills/search", url.Values{"keyword": {keyword}})
}

// Languages manages content languages
type Languages struct {
	*Resource[models.Language, models.LanguageInput]
}

func newLanguages(api *client.Client, c *cache.Cache) *Languages {
	return &Languages{newResource[models.Language, models.LanguageInput](api, c, "/languages")}
}

// ByCode looks a language up by its code, e.g. "en"
func (l *Languages) ByCode(ctx context.Context, code string) (*models.Language, error) {
	lang, err := query[models.Language](ctx, l.api, l.cache, "/languages/code/"+url.PathEscape(code), nil)
	if err != nil {
		return nil, err
	}
	return &lang, nil
}

// Default returns the default content language
func (l *Languages) Default(ctx context.Context) (*models.Language, error) {
	lang, err := query[models.Language](ctx, l.api, l.cache, "/languages/default", nil)
	if err != nil {
		return nil, err
	}
	return &lang, nil
}

// Search lists languages matching keyword
func (l *Languages) Search(ctx context.Context, keyword string) ([]models.Language, error) {
	return query[[]models.Language](ctx, l.api, l.cache, "/languages/search", url.Values{"keyword": {keyword}})
}
