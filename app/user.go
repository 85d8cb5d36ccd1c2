package app

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/authgw/authgw/internal/auth"
	"github.com/authgw/authgw/internal/db"
	"github.com/authgw/authgw/internal/db/repository"
)

const minPasswordLength = 8

var errPasswordMismatch = errors.New("passwords do not match")

func init() { //nolint: gochecknoinits
	userAddCmd.Flags().StringVar(&newUser.username, "username", "", "login name")
	userAddCmd.Flags().StringVar(&newUser.email, "email", "", "email address")
	userAddCmd.Flags().StringVar(&newUser.firstName, "first-name", "", "first name")
	userAddCmd.Flags().StringVar(&newUser.lastName, "last-name", "", "last name")
	userAddCmd.Flags().BoolVar(&newUser.superuser, "superuser", false, "grant superuser and staff")
	_ = userAddCmd.MarkFlagRequired("username")

	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}

var (
	newUser struct {
		username  string
		email     string
		firstName string
		lastName  string
		superuser bool
	}

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage local users",
	}

	userAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Create a local user with a password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := promptNewPassword()
			if err != nil {
				return err
			}

			gormDB, err := db.Open(cfg.DB)
			if err != nil {
				return err
			}

			user, err := auth.NewLocalBackend(repository.NewUsers(gormDB)).CreateUser(
				newUser.username,
				newUser.email,
				password,
				newUser.firstName,
				newUser.lastName,
				newUser.superuser,
			)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", user.Username, user.ID)

			return err
		},
	}
)

func promptNewPassword() (string, error) {
	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) < minPasswordLength {
				return fmt.Errorf("password must be at least %d characters", minPasswordLength)
			}

			return nil
		},
	}

	password, err := prompt.Run()
	if err != nil {
		return "", err
	}

	confirm := promptui.Prompt{Label: "Confirm password", Mask: '*'}

	again, err := confirm.Run()
	if err != nil {
		return "", err
	}

	if password != again {
		return "", errPasswordMismatch
	}

	return password, nil
}
