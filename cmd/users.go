// ABOUTME: User administration commands (admin only on the backend)
// ABOUTME: Lists, edits and deletes accounts and manages their roles

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/portfolio-admin/internal/models"
)

var (
	userData string
	userFile string
	userYes  bool
)

var userColumns = columns[models.User]{
	headers: []string{"ID", "Username", "Email", "Name", "Roles"},
	row: func(u models.User) []string {
		name := strings.TrimSpace(u.FirstName + " " + u.LastName)
		return []string{strconv.FormatInt(u.ID, 10), u.Username, u.Email, orDash(name), strings.Join(u.Roles, ",")}
	},
}

var roleColumns = columns[models.Role]{
	headers: []string{"ID", "Role"},
	row: func(r models.Role) []string {
		return []string{strconv.FormatInt(r.ID, 10), r.Name}
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts (requires the admin role)",
}

func init() {
	list := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		Run:   cobraRun(runUsersList),
	}
	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		Run:   cobraRun(runUsersGet),
	}
	update := &cobra.Command{
		Use:     "update ID",
		Short:   "Update a user's profile; omitted fields are left unchanged",
		Example: `  portfolio users update 7 --data '{"email":"new@example.com"}'`,
		Args:    cobra.ExactArgs(1),
		Run:     cobraRun(runUsersUpdate),
	}
	update.Flags().StringVarP(&userData, "data", "d", "", "JSON payload")
	update.Flags().StringVarP(&userFile, "file", "f", "", "Read the JSON payload from a file, - for stdin")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		Run:   cobraRun(runUsersDelete),
	}
	del.Flags().BoolVarP(&userYes, "yes", "y", false, "Delete without asking")

	roles := &cobra.Command{
		Use:   "roles ID",
		Short: "List a user's roles",
		Args:  cobra.ExactArgs(1),
		Run:   cobraRun(runUsersRoles),
	}
	setRoles := &cobra.Command{
		Use:     "set-roles ID ROLE...",
		Short:   "Replace a user's roles",
		Example: `  portfolio users set-roles 7 ROLE_USER ROLE_ADMIN`,
		Args:    cobra.MinimumNArgs(2),
		Run:     cobraRun(runUsersSetRoles),
	}

	usersCmd.AddCommand(list, get, update, del, roles, setRoles)
	rootCmd.AddCommand(usersCmd)
}

func runUsersList(ctx context.Context, a *app, _ []string) error {
	users, err := a.svc.Users.List(ctx)
	if err != nil {
		return err
	}
	return renderList(a, "users", users, userColumns)
}

func runUsersGet(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	u, err := a.svc.Users.Get(ctx, id)
	if err != nil {
		return err
	}
	return renderItem(a, u, userColumns)
}

func runUsersUpdate(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	in, err := readInput[models.UserUpdate](a, userData, userFile)
	if err != nil {
		return err
	}
	u, err := a.svc.Users.Update(ctx, id, in)
	if err != nil {
		return err
	}
	a.printer.Success("Updated user %d", id)
	return renderItem(a, u, userColumns)
}

func runUsersDelete(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := confirmDelete(a, fmt.Sprintf("user %d", id), userYes); err != nil {
		return err
	}
	if err := a.svc.Users.Delete(ctx, id); err != nil {
		return err
	}
	a.printer.Success("Deleted user %d", id)
	return nil
}

func runUsersRoles(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	roles, err := a.svc.Users.Roles(ctx, id)
	if err != nil {
		return err
	}
	return renderList(a, "roles", roles, roleColumns)
}

func runUsersSetRoles(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	roles, err := a.svc.Users.SetRoles(ctx, id, args[1:])
	if err != nil {
		return err
	}
	a.printer.Success("Updated roles of user %d", id)
	return renderList(a, "roles", roles, roleColumns)
}
