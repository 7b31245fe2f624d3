// Package commands holds the admin CLI subcommands.
package commands

import (
	"context"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/services"
	"github.com/nami21/support-portal/internal/store"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// adminContext returns a context carrying operator identity so the service
// layer's admin gates pass. The CLI runs with full privileges by definition.
func adminContext() context.Context {
	ctx := contextutils.WithUserID(context.Background(), "adm-cli")
	return contextutils.WithUserRole(ctx, string(models.RoleAdmin))
}

// UserCommands returns the user management commands.
func UserCommands(userService *services.UserService, st store.Store, logger *observability.Logger) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long: `User management commands for the support portal.

Available commands:
  list        - List all accounts
  create      - Create a new account
  set-role    - Change an account's role
  deactivate  - Deactivate an account
  activate    - Reactivate an account
  delete      - Delete an account`,
	}

	userCmd.AddCommand(listUsersCmd(userService, st))
	userCmd.AddCommand(createUserCmd(userService, logger))
	userCmd.AddCommand(setRoleCmd(userService, logger))
	userCmd.AddCommand(setActiveCmd(userService, logger, "deactivate", false))
	userCmd.AddCommand(setActiveCmd(userService, logger, "activate", true))
	userCmd.AddCommand(deleteUserCmd(userService, logger))

	return userCmd
}

func listUsersCmd(userService *services.UserService, st store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := adminContext()

			users, err := userService.List(ctx)
			if err != nil {
				return contextutils.WrapError(err, "failed to list users")
			}

			if len(users) == 0 {
				fmt.Printf("No accounts found (backend: %s)\n", st.Backend())
				return nil
			}

			fmt.Printf("%-36s %-30s %-20s %-12s %-12s %-8s %-10s\n", "ID", "Email", "Name", "Role", "Division", "Active", "Created")
			fmt.Println(strings.Repeat("-", 130))
			for _, u := range users {
				active := "no"
				if u.IsActive {
					active = "yes"
				}
				fmt.Printf("%-36s %-30s %-20s %-12s %-12s %-8s %-10s\n",
					u.ID, u.Email, u.Name, u.Role, u.Division, active, u.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func createUserCmd(userService *services.UserService, logger *observability.Logger) *cobra.Command {
	var (
		name     string
		role     string
		division string
		prompt   bool
	)

	cmd := &cobra.Command{
		Use:   "create [email]",
		Short: "Create a new account",
		Long:  `Create a new account. With --password, the password is read interactively; without it the account uses the shared demo password in demo mode.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := adminContext()

			var password string
			if prompt {
				fmt.Print("Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Println()
				if err != nil {
					return contextutils.WrapError(err, "failed to read password")
				}
				password = string(raw)
			}

			created, err := userService.Create(ctx, models.UserInput{
				Email:    args[0],
				Name:     name,
				Role:     models.Role(role),
				Division: division,
				IsActive: true,
				Password: password,
			})
			if err != nil {
				return contextutils.WrapError(err, "failed to create user")
			}

			logger.Info(ctx, "Account created", map[string]interface{}{"user_id": created.ID})
			fmt.Printf("Created %s (%s) with role %s\n", created.Email, created.ID, created.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", string(models.RoleUser), "role (admin, support, user, unassigned)")
	cmd.Flags().StringVar(&division, "division", "", "division")
	cmd.Flags().BoolVar(&prompt, "password", false, "prompt for a password")
	return cmd
}

func setRoleCmd(userService *services.UserService, logger *observability.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "set-role [email] [role]",
		Short: "Change an account's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := adminContext()

			user, err := findUserByEmail(ctx, userService, args[0])
			if err != nil {
				return err
			}

			role := models.Role(args[1])
			updated, err := userService.Update(ctx, user.ID, models.UserPatch{Role: &role})
			if err != nil {
				return contextutils.WrapError(err, "failed to update role")
			}

			logger.Info(ctx, "Role changed", map[string]interface{}{"user_id": updated.ID, "role": string(updated.Role)})
			fmt.Printf("%s is now %s\n", updated.Email, updated.Role)
			return nil
		},
	}
}

func setActiveCmd(userService *services.UserService, logger *observability.Logger, use string, active bool) *cobra.Command {
	short := "Deactivate an account"
	if active {
		short = "Reactivate an account"
	}

	return &cobra.Command{
		Use:   use + " [email]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := adminContext()

			user, err := findUserByEmail(ctx, userService, args[0])
			if err != nil {
				return err
			}

			isActive := active
			updated, err := userService.Update(ctx, user.ID, models.UserPatch{IsActive: &isActive})
			if err != nil {
				return contextutils.WrapError(err, "failed to update account")
			}

			logger.Info(ctx, "Account active flag changed", map[string]interface{}{"user_id": updated.ID, "is_active": updated.IsActive})
			fmt.Printf("%s active: %t\n", updated.Email, updated.IsActive)
			return nil
		},
	}
}

func deleteUserCmd(userService *services.UserService, logger *observability.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [email]",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := adminContext()

			user, err := findUserByEmail(ctx, userService, args[0])
			if err != nil {
				return err
			}

			deleted, err := userService.Delete(ctx, user.ID)
			if err != nil {
				return contextutils.WrapError(err, "failed to delete user")
			}
			if !deleted {
				fmt.Printf("No account found for %s\n", args[0])
				return nil
			}

			logger.Info(ctx, "Account deleted", map[string]interface{}{"user_id": user.ID})
			fmt.Printf("Deleted %s\n", user.Email)
			return nil
		},
	}
}

func findUserByEmail(ctx context.Context, userService *services.UserService, email string) (*models.User, error) {
	users, err := userService.List(ctx)
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to list users")
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, contextutils.WrapErrorf(contextutils.ErrRecordNotFound, "no account with email %s", email)
}
