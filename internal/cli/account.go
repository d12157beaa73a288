package cli

import (
	"errors"
	"fmt"

	"bounty/internal/types"

	"github.com/spf13/cobra"
)

var ErrSessionInvalid = errors.New("session is not valid")

func newLoginCmd(rt *runtime) *cobra.Command {
	var (
		code     string
		nickname string
		avatar   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a WeChat login code",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := rt.svc.Login(cmd.Context(), code, types.WechatProfile{NickName: nickname, AvatarURL: avatar})
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s), role %s\n", u.Nickname, u.UserID, u.RoleType)
			fmt.Fprintf(cmd.OutOrStdout(), "Balance: %s, frozen: %s\n", u.CoinBalance, u.FrozenBalance)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Login code from wx.login")
	cmd.Flags().StringVar(&nickname, "nickname", "", "WeChat nickname")
	cmd.Flags().StringVar(&avatar, "avatar", "", "WeChat avatar URL")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func newLogoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt.svc.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the locally stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := rt.svc.Profile()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
}

func newRefreshCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload the profile from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := rt.svc.Refresh(cmd.Context())
			if err != nil {
				return fmt.Errorf("refresh profile: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
}

func newCheckCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the stored session is still accepted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !rt.svc.Check(cmd.Context()) {
				return ErrSessionInvalid
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session is valid")
			return nil
		},
	}
}

func newSendCodeCmd(rt *runtime) *cobra.Command {
	var (
		email   string
		purpose string
	)

	cmd := &cobra.Command{
		Use:   "send-code",
		Short: "Send an email verification code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.svc.SendCode(cmd.Context(), email, types.CodePurpose(purpose)); err != nil {
				return fmt.Errorf("send code: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Code sent to %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&purpose, "type", string(types.PurposeBind), "Code purpose (bind, update, reset)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newBindCmd(rt *runtime) *cobra.Command {
	var p types.BindParams

	cmd := &cobra.Command{
		Use:   "bind",
		Short: "Bind student id and real name to the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := rt.svc.Bind(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("bind: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}

	cmd.Flags().StringVar(&p.StudentID, "student-id", "", "Student id")
	cmd.Flags().StringVar(&p.RealName, "real-name", "", "Real name")
	cmd.Flags().StringVar(&p.Email, "email", "", "Email the code was sent to")
	cmd.Flags().StringVar(&p.VerifyCode, "code", "", "Verification code")
	return cmd
}

func newUpdateProfileCmd(rt *runtime) *cobra.Command {
	var (
		nickname  string
		avatarURL string
		email     string
		code      string
	)

	cmd := &cobra.Command{
		Use:   "update-profile",
		Short: "Change nickname, avatar URL or email",
		RunE: func(cmd *cobra.Command, args []string) error {
			// отправляем только явно заданные флаги
			var p types.UpdateProfileParams
			if cmd.Flags().Changed("nickname") {
				p.Nickname = &nickname
			}
			if cmd.Flags().Changed("avatar-url") {
				p.AvatarURL = &avatarURL
			}
			if cmd.Flags().Changed("email") {
				p.Email = &email
			}
			if cmd.Flags().Changed("code") {
				p.VerifyCode = &code
			}

			u, err := rt.svc.UpdateProfile(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("update profile: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "New nickname")
	cmd.Flags().StringVar(&avatarURL, "avatar-url", "", "New avatar URL")
	cmd.Flags().StringVar(&email, "email", "", "New email (needs --code)")
	cmd.Flags().StringVar(&code, "code", "", "Verification code for the email change")
	return cmd
}

func newUploadCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a new avatar image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := rt.svc.UploadAvatar(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("upload avatar: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Avatar: %s\n", u.AvatarURL)
			return nil
		},
	}
}
