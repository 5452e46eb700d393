package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"artisanmart/internal/apiclient"
	"artisanmart/internal/forms"
	"artisanmart/internal/session"

	"github.com/spf13/cobra"
)

var loginForm forms.LoginForm

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		if err := c.auth.Login(cmd.Context(), loginForm); err != nil {
			if printFieldErrors(cmd.ErrOrStderr(), err) {
				return errors.New("login form is invalid")
			}
			return fmt.Errorf("login failed: %s", apiclient.MessageOr(err, c.session.State().LoginError))
		}
		user := c.session.State().User
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s).\n", user.Email, user.Role)
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		c.auth.Logout()
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user and the menu they can reach",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		out := cmd.OutOrStdout()
		state := c.session.State()
		fmt.Fprintf(out, "Status: %s\n", state.Status())
		if user := state.User; user != nil {
			fmt.Fprintf(out, "User:   %s <%s>\n", user.FullName, user.Email)
			fmt.Fprintf(out, "Role:   %s\n", user.Role)
		}
		if token, ok := c.session.Token(); ok {
			if info, err := session.InspectToken(token); err == nil && !info.ExpiresAt.IsZero() {
				note := ""
				if info.Expired(time.Now()) {
					note = " (expired)"
				}
				fmt.Fprintf(out, "Token:  expires %s%s\n", info.ExpiresAt.Format(time.RFC1123), note)
			}
		}
		fmt.Fprintln(out, "Menu:")
		for _, item := range session.VisibleMenu(state.UserRole()) {
			fmt.Fprintf(out, "  %-18s %s\n", item.Label, item.Href)
		}
		return nil
	}),
}

var signupForm forms.SignupForm

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a customer account",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		msg, err := c.auth.Register(cmd.Context(), signupForm)
		if err != nil {
			if printFieldErrors(cmd.ErrOrStderr(), err) {
				return errors.New("registration form is invalid")
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}),
}

var verifyEmailCmd = &cobra.Command{
	Use:   "verify-email TOKEN",
	Short: "Confirm an email address with the token from the verification link",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		token := ""
		if len(args) == 1 {
			token = tokenFromLink(args[0])
		}
		msg, err := c.auth.VerifyEmail(cmd.Context(), token)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}),
}

var forgotForm forms.ForgotPasswordForm

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Email a password reset link",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		msg, err := c.auth.ForgotPassword(cmd.Context(), forgotForm)
		if err != nil {
			if printFieldErrors(cmd.ErrOrStderr(), err) {
				return errors.New("email is invalid")
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}),
}

var resetForm forms.ResetPasswordForm

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password with the token from the reset link",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		form := resetForm
		form.Token = tokenFromLink(form.Token)
		msg, err := c.auth.ResetPassword(cmd.Context(), form)
		if err != nil {
			if printFieldErrors(cmd.ErrOrStderr(), err) {
				return errors.New("reset form is invalid")
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}),
}

func init() {
	loginCmd.Flags().StringVar(&loginForm.Email, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginForm.Password, "password", "", "account password")

	f := registerCmd.Flags()
	f.StringVar(&signupForm.Username, "username", "", "username (defaults to the part of the email before @)")
	f.StringVar(&signupForm.FullName, "full-name", "", "full name")
	f.StringVar(&signupForm.Email, "email", "", "email address")
	f.StringVar(&signupForm.Phone, "phone", "", "phone number")
	f.StringVar(&signupForm.Address, "address", "", "postal address")
	f.StringVar(&signupForm.Password, "password", "", "password, at least 8 characters")
	f.StringVar(&signupForm.ConfirmPassword, "confirm-password", "", "password again")
	f.BoolVar(&signupForm.TermsAccepted, "accept-terms", false, "agree to the terms and conditions")

	forgotPasswordCmd.Flags().StringVar(&forgotForm.Email, "email", "", "account email")

	f = resetPasswordCmd.Flags()
	f.StringVar(&resetForm.Token, "token", "", "token or full reset link")
	f.StringVar(&resetForm.NewPassword, "password", "", "new password, at least 8 characters")
	f.StringVar(&resetForm.ConfirmPassword, "confirm-password", "", "new password again")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd, verifyEmailCmd, forgotPasswordCmd, resetPasswordCmd)
}

// tokenFromLink accepts either a bare token or a link carrying ?token=.
func tokenFromLink(s string) string {
	s = strings.TrimSpace(s)
	if _, rest, ok := strings.Cut(s, "token="); ok {
		token, _, _ := strings.Cut(rest, "&")
		return token
	}
	return s
}

// printFieldErrors writes per-field messages and reports whether err carried any.
func printFieldErrors(w io.Writer, err error) bool {
	var verrs forms.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, field := range verrs.Fields() {
		fmt.Fprintf(w, "  %s: %s\n", field, verrs[field])
	}
	return true
}
