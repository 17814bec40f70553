package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" && a.IsInteractive != nil && a.IsInteractive() {
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title("Password").
							EchoMode(huh.EchoModePassword).
							Value(&password),
					),
				).WithTheme(prdeskHuhTheme()).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
			}

			resp, err := a.Auth.Login(context.Background(), username, password)
			if err != nil {
				return fmt.Errorf("%s", api.Detail(err, "Login failed"))
			}

			fmt.Printf("Logged in as %s\n", formatter.Bold(resp.User.FullName()))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newLogoutCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Sessions.Clear(context.Background()); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newRegisterCmd(a *App) *cobra.Command {
	var in api.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Auth.Register(context.Background(), in); err != nil {
				return fmt.Errorf("%s", api.Detail(err, "Registration failed"))
			}
			fmt.Printf("Account %s created. Run 'prdesk login' to sign in.\n", formatter.Bold(in.Username))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Username, "username", "", "Account username")
	cmd.Flags().StringVar(&in.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "Last name")
	cmd.Flags().BoolVar(&in.IsHOD, "hod", false, "Register as a head of department")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newWhoamiCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := a.Sessions.Current()
			if user == nil {
				fmt.Println("Not signed in.")
				return nil
			}
			role := "requester"
			if user.IsHOD {
				role = "head of department"
			}
			fmt.Printf("%s (%s) — %s\n", formatter.Bold(user.FullName()), user.Username, role)
			return nil
		},
	}
}

func newProfileCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the account profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.Auth.Profile(context.Background())
			if err != nil {
				return fmt.Errorf("%s", api.Detail(err, "Failed to load profile"))
			}
			fmt.Println(formatter.FormatProfile(user))
			return nil
		},
	}

	cmd.AddCommand(newProfileUpdateCmd(a), newPasswordResetCmd(a))
	return cmd
}

func newProfileUpdateCmd(a *App) *cobra.Command {
	var firstName, lastName, email string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := make(map[string]any)
			if cmd.Flags().Changed("first-name") {
				fields["first_name"] = firstName
			}
			if cmd.Flags().Changed("last-name") {
				fields["last_name"] = lastName
			}
			if cmd.Flags().Changed("email") {
				fields["email"] = email
			}
			if len(fields) == 0 {
				return fmt.Errorf("nothing to update, pass at least one flag")
			}

			user, err := a.Auth.UpdateProfile(context.Background(), fields)
			if err != nil {
				return fmt.Errorf("%s", api.Detail(err, "Failed to update profile"))
			}
			fmt.Printf("Profile updated for %s\n", formatter.Bold(user.FullName()))
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")

	return cmd
}

func newPasswordResetCmd(a *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Request a password reset email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Auth.RequestPasswordReset(context.Background(), email); err != nil {
				return fmt.Errorf("%s", api.Detail(err, "Failed to request password reset"))
			}
			fmt.Printf("Password reset requested for %s. Check your inbox.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email address")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
