package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Manage your profile",
}

var meNicknameCmd = &cobra.Command{
	Use:   "nickname <new-nickname>",
	Short: "Change your nickname",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.client.UpdateNickname(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("nickname changed to %s\n", args[0])
		return nil
	},
}

var (
	currentPassword string
	newPassword     string
)

var mePasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.client.ChangePassword(cmd.Context(), currentPassword, newPassword); err != nil {
			return err
		}
		fmt.Println("password changed")
		return nil
	},
}

var extraInfoPairs []string

var meExtraInfoCmd = &cobra.Command{
	Use:   "extra-info",
	Short: "Update optional profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		payload := make(map[string]string, len(extraInfoPairs))
		for _, pair := range extraInfoPairs {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("invalid --set %q, expected key=value", pair)
			}
			payload[key] = value
		}
		if len(payload) == 0 {
			return fmt.Errorf("nothing to update: pass at least one --set key=value")
		}

		if err := a.client.UpdateExtraInfo(cmd.Context(), payload); err != nil {
			return err
		}
		fmt.Println("profile updated")
		return nil
	},
}

var meAvatarCmd = &cobra.Command{
	Use:   "avatar <image-file>",
	Short: "Upload a profile image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		url, err := a.client.UploadProfileImage(cmd.Context(), filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		fmt.Printf("profile image uploaded: %s\n", url)
		return nil
	},
}

var meAvatarDeleteCmd = &cobra.Command{
	Use:   "avatar-delete",
	Short: "Remove your profile image",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.client.DeleteProfileImage(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("profile image removed")
		return nil
	},
}

var phoneNumber string

var meVerifyPhoneCmd = &cobra.Command{
	Use:   "verify-phone [code]",
	Short: "Request or confirm phone verification",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if len(args) == 1 {
			if err := a.client.VerifyPhoneCode(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("phone verified")
			return nil
		}
		if phoneNumber == "" {
			return fmt.Errorf("pass --phone to request a code, or a code to confirm")
		}
		if err := a.client.RequestPhoneVerification(cmd.Context(), phoneNumber); err != nil {
			return err
		}
		fmt.Println("verification code sent")
		return nil
	},
}

var meDeleteCmd = &cobra.Command{
	Use:   "delete-account",
	Short: "Permanently delete your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print("This permanently deletes your account. Type the word 'delete' to confirm: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "delete" {
			fmt.Println("aborted")
			return nil
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.client.DeleteAccount(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("account deleted")
		return nil
	},
}

func init() {
	mePasswordCmd.Flags().StringVar(&currentPassword, "current", "", "Current password")
	mePasswordCmd.Flags().StringVar(&newPassword, "new", "", "New password")
	_ = mePasswordCmd.MarkFlagRequired("current")
	_ = mePasswordCmd.MarkFlagRequired("new")

	meExtraInfoCmd.Flags().StringArrayVar(&extraInfoPairs, "set", nil, "Field to set as key=value (repeatable)")
	meVerifyPhoneCmd.Flags().StringVar(&phoneNumber, "phone", "", "Phone number to send the code to")

	meCmd.AddCommand(meNicknameCmd)
	meCmd.AddCommand(mePasswordCmd)
	meCmd.AddCommand(meExtraInfoCmd)
	meCmd.AddCommand(meAvatarCmd)
	meCmd.AddCommand(meAvatarDeleteCmd)
	meCmd.AddCommand(meVerifyPhoneCmd)
	meCmd.AddCommand(meDeleteCmd)
	rootCmd.AddCommand(meCmd)
}
