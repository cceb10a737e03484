// ABOUTME: Content commands for projects, blogs, skills and languages
// ABOUTME: Each resource gets list/get/create/update/delete plus its own queries

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/portfolio-admin/internal/models"
	"github.com/markalston/portfolio-admin/internal/portfolio"
)

// resourceSpec describes one content resource on the command line
type resourceSpec[T any, In any] struct {
	name     string // plural, used as the command name
	singular string
	resource func(*app) *portfolio.Resource[T, In]
	cols     columns[T]
	// validate checks a payload before it is sent
	validate func(In) error
}

// newResourceCmd builds the CRUD command tree for a resource
func newResourceCmd[T any, In any](spec resourceSpec[T, In]) *cobra.Command {
	var (
		data string
		file string
		yes  bool
	)

	parent := &cobra.Command{
		Use:   spec.name,
		Short: "Manage " + spec.name,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all " + spec.name,
		Args:  cobra.NoArgs,
		Run: cobraRun(func(ctx context.Context, a *app, _ []string) error {
			items, err := spec.resource(a).List(ctx)
			if err != nil {
				return err
			}
			return renderList(a, spec.name, items, spec.cols)
		}),
	}

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one " + spec.singular,
		Args:  cobra.ExactArgs(1),
		Run: cobraRun(func(ctx context.Context, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			item, err := spec.resource(a).Get(ctx, id)
			if err != nil {
				return err
			}
			return renderItem(a, item, spec.cols)
		}),
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a " + spec.singular + " from a JSON payload",
		Args:  cobra.NoArgs,
		Run: cobraRun(func(ctx context.Context, a *app, _ []string) error {
			in, err := readPayload(a, spec, data, file)
			if err != nil {
				return err
			}
			item, err := spec.resource(a).Create(ctx, in)
			if err != nil {
				return err
			}
			a.printer.Success("Created %s", spec.singular)
			return renderItem(a, item, spec.cols)
		}),
	}

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Update a " + spec.singular + "; omitted fields are left unchanged",
		Args:  cobra.ExactArgs(1),
		Run: cobraRun(func(ctx context.Context, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in, err := readPayload(a, spec, data, file)
			if err != nil {
				return err
			}
			item, err := spec.resource(a).Update(ctx, id, in)
			if err != nil {
				return err
			}
			a.printer.Success("Updated %s %d", spec.singular, id)
			return renderItem(a, item, spec.cols)
		}),
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + spec.singular,
		Args:  cobra.ExactArgs(1),
		Run: cobraRun(func(ctx context.Context, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := confirmDelete(a, fmt.Sprintf("%s %d", spec.singular, id), yes); err != nil {
				return err
			}
			if err := spec.resource(a).Delete(ctx, id); err != nil {
				return err
			}
			a.printer.Success("Deleted %s %d", spec.singular, id)
			return nil
		}),
	}

	for _, c := range []*cobra.Command{create, update} {
		c.Flags().StringVarP(&data, "data", "d", "", "JSON payload")
		c.Flags().StringVarP(&file, "file", "f", "", "Read the JSON payload from a file, - for stdin")
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	parent.AddCommand(list, get, create, update, del)
	return parent
}

func readPayload[T any, In any](a *app, spec resourceSpec[T, In], data, file string) (In, error) {
	in, err := readInput[In](a, data, file)
	if err != nil {
		return in, err
	}
	if spec.validate != nil {
		if err := spec.validate(in); err != nil {
			return in, usageError("%v", err)
		}
	}
	return in, nil
}

// queryCmd builds a read-only subcommand that lists what run returns
func queryCmd[T any](use, short string, args cobra.PositionalArgs, noun string, cols columns[T], run func(context.Context, *app, []string) ([]T, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		Run: cobraRun(func(ctx context.Context, a *app, args []string) error {
			items, err := run(ctx, a, args)
			if err != nil {
				return err
			}
			return renderList(a, noun, items, cols)
		}),
	}
}

// searchCmd builds a keyword search over a paged endpoint
func searchCmd[T any](noun string, cols columns[T], search func(context.Context, *app, string) (models.Page[T], error)) *cobra.Command {
	return &cobra.Command{
		Use:   "search KEYWORD...",
		Short: "Search " + noun + " by keyword",
		Args:  cobra.MinimumNArgs(1),
		Run: cobraRun(func(ctx context.Context, a *app, args []string) error {
			page, err := search(ctx, a, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return renderPage(a, noun, page, cols)
		}),
	}
}

var projectColumns = columns[models.Project]{
	headers: []string{"ID", "Title", "Featured", "Active", "Updated"},
	row: func(p models.Project) []string {
		return []string{strconv.FormatInt(p.ID, 10), p.Title, yesNo(p.IsFeatured), yesNo(p.IsActive), p.UpdatedAt.String()}
	},
}

var blogColumns = columns[models.Blog]{
	headers: []string{"ID", "Title", "Published", "Views", "Updated"},
	row: func(b models.Blog) []string {
		return []string{strconv.FormatInt(b.ID, 10), b.Title, yesNo(b.IsPublished), strconv.FormatInt(b.ViewCount, 10), b.UpdatedAt.String()}
	},
}

var skillColumns = columns[models.Skill]{
	headers: []string{"ID", "Name", "Level", "Category"},
	row: func(s models.Skill) []string {
		return []string{strconv.FormatInt(s.ID, 10), s.Name, strconv.Itoa(s.Level), orDash(s.Category)}
	},
}

var languageColumns = columns[models.Language]{
	headers: []string{"ID", "Code", "Name", "Native", "Default"},
	row: func(l models.Language) []string {
		return []string{strconv.FormatInt(l.ID, 10), l.Code, l.Name, orDash(l.NativeName), yesNo(l.IsDefault)}
	},
}

func newProjectsCmd() *cobra.Command {
	cmd := newResourceCmd(resourceSpec[models.Project, models.ProjectInput]{
		name:     "projects",
		singular: "project",
		resource: func(a *app) *portfolio.Resource[models.Project, models.ProjectInput] { return a.svc.Projects.Resource },
		cols:     projectColumns,
	})
	cmd.AddCommand(
		queryCmd("featured", "List featured projects", cobra.NoArgs, "featured projects", projectColumns,
			func(ctx context.Context, a *app, _ []string) ([]models.Project, error) { return a.svc.Projects.Featured(ctx) }),
		queryCmd("active", "List active projects", cobra.NoArgs, "active projects", projectColumns,
			func(ctx context.Context, a *app, _ []string) ([]models.Project, error) { return a.svc.Projects.Active(ctx) }),
		searchCmd("projects", projectColumns,
			func(ctx context.Context, a *app, kw string) (models.Page[models.Project], error) {
				return a.svc.Projects.Search(ctx, kw)
			}),
	)
	return cmd
}

func newBlogsCmd() *cobra.Command {
	cmd := newResourceCmd(resourceSpec[models.Blog, models.BlogInput]{
		name:     "blogs",
		singular: "blog post",
		resource: func(a *app) *portfolio.Resource[models.Blog, models.BlogInput] { return a.svc.Blogs.Resource },
		cols:     blogColumns,
	})
	cmd.AddCommand(
		queryCmd("published", "List published posts", cobra.NoArgs, "published posts", blogColumns,
			func(ctx context.Context, a *app, _ []string) ([]models.Blog, error) { return a.svc.Blogs.Published(ctx) }),
		searchCmd("blog posts", blogColumns,
			func(ctx context.Context, a *app, kw string) (models.Page[models.Blog], error) {
				return a.svc.Blogs.Search(ctx, kw)
			}),
	)
	return cmd
}

func newSkillsCmd() *cobra.Command {
	cmd := newResourceCmd(resourceSpec[models.Skill, models.SkillInput]{
		name:     "skills",
		singular: "skill",
		resource: func(a *app) *portfolio.Resource[models.Skill, models.SkillInput] { return a.svc.Skills.Resource },
		cols:     skillColumns,
		validate: validateSkill,
	})
	cmd.AddCommand(
		queryCmd("level LEVEL", "List skills at a proficiency level (1-100)", cobra.ExactArgs(1), "skills", skillColumns,
			func(ctx context.Context, a *app, args []string) ([]models.Skill, error) {
				level, err := strconv.Atoi(args[0])
				if err != nil {
					return nil, usageError("invalid level %q: must be a number", args[0])
				}
				if level < 1 || level > 100 {
					return nil, usageError("level must be between 1 and 100, got %d", level)
				}
				return a.svc.Skills.ByLevel(ctx, level)
			}),
		queryCmd("search KEYWORD...", "Search skills by name", cobra.MinimumNArgs(1), "skills", skillColumns,
			func(ctx context.Context, a *app, args []string) ([]models.Skill, error) {
				return a.svc.Skills.Search(ctx, strings.Join(args, " "))
			}),
	)
	return cmd
}

func validateSkill(in models.SkillInput) error {
	if in.Level != nil && (*in.Level < 1 || *in.Level > 100) {
		return fmt.Errorf("level must be between 1 and 100, got %d", *in.Level)
	}
	return nil
}

func newLanguagesCmd() *cobra.Command {
	cmd := newResourceCmd(resourceSpec[models.Language, models.LanguageInput]{
		name:     "languages",
		singular: "language",
		resource: func(a *app) *portfolio.Resource[models.Language, models.LanguageInput] {
			return a.svc.Languages.Resource
		},
		cols: languageColumns,
	})

	one := func(use, short string, args cobra.PositionalArgs, fetch func(context.Context, *app, []string) (*models.Language, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			Run: cobraRun(func(ctx context.Context, a *app, args []string) error {
				lang, err := fetch(ctx, a, args)
				if err != nil {
					return err
				}
				return renderItem(a, lang, languageColumns)
			}),
		}
	}

	cmd.AddCommand(
		one("code CODE", "Show the language with a code, e.g. en", cobra.ExactArgs(1),
			func(ctx context.Context, a *app, args []string) (*models.Language, error) {
				return a.svc.Languages.ByCode(ctx, args[0])
			}),
		one("default", "Show the default content language", cobra.NoArgs,
			func(ctx context.Context, a *app, _ []string) (*models.Language, error) {
				return a.svc.Languages.Default(ctx)
			}),
		queryCmd("search KEYWORD...", "Search languages by name or code", cobra.MinimumNArgs(1), "languages", languageColumns,
			func(ctx context.Context, a *app, args []string) ([]models.Language, error) {
				return a.svc.Languages.Search(ctx, strings.Join(args, " "))
			}),
	)
	return cmd
}

func init() {
	rootCmd.AddCommand(newProjectsCmd(), newBlogsCmd(), newSkillsCmd(), newLanguagesCmd())
}
