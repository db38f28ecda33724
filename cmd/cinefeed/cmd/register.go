package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yjkwon/cinefeed/client"
)

var registration client.Registration

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		ctx := cmd.Context()

		// Mirror the signup form: check availability first so the user
		// gets a specific message instead of a generic conflict error.
		if exists, err := a.client.CheckEmail(ctx, registration.Email); err != nil {
			return err
		} else if exists {
			return fmt.Errorf("email %s is already registered", registration.Email)
		}
		if exists, err := a.client.CheckNickname(ctx, registration.Nickname); err != nil {
			return err
		} else if exists {
			return fmt.Errorf("nickname %s is already taken", registration.Nickname)
		}

		user, err := a.client.Register(ctx, registration)
		if err != nil {
			return err
		}
		fmt.Printf("account created for %s <%s>, run `cinefeed login` to sign in\n", user.Nickname, user.Email)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registration.Email, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registration.Password, "password", "", "Account password")
	registerCmd.Flags().StringVar(&registration.Nickname, "nickname", "", "Display nickname")
	registerCmd.Flags().StringVar(&registration.Phone, "phone", "", "Phone number (optional)")
	registerCmd.Flags().StringVar(&registration.Birth, "birth", "", "Birth date YYYY-MM-DD (optional)")
	registerCmd.Flags().StringVar(&registration.Gender, "gender", "", "Gender (optional)")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("nickname")

	rootCmd.AddCommand(registerCmd)
}
