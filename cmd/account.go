package cmd

import (
	"fmt"
	"io"

	"artisanmart/internal/forms"
	"artisanmart/internal/models"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		if err := c.requireLogin(); err != nil {
			return err
		}
		user, err := c.profile.Get(cmd.Context())
		if err != nil {
			return err
		}
		printUser(cmd.OutOrStdout(), user)
		return nil
	}),
}

var profileUpdate struct {
	fullName, address, phone string
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change your name, address or phone",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		if err := c.requireLogin(); err != nil {
			return err
		}
		var update models.ProfileUpdate
		if cmd.Flags().Changed("full-name") {
			update.FullName = &profileUpdate.fullName
		}
		if cmd.Flags().Changed("address") {
			update.Address = &profileUpdate.address
		}
		if cmd.Flags().Changed("phone") {
			update.Phone = &profileUpdate.phone
		}
		user, err := c.profile.Update(cmd.Context(), update)
		if err != nil {
			return err
		}
		printUser(cmd.OutOrStdout(), user)
		return nil
	}),
}

var becomeArtisanCmd = &cobra.Command{
	Use:   "become-artisan",
	Short: "Upgrade your account so you can open a brand and sell",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		if err := c.requireLogin(); err != nil {
			return err
		}
		if c.session.HasRole(models.RoleArtisan) {
			fmt.Fprintln(cmd.OutOrStdout(), "You are already an artisan.")
			return nil
		}
		if err := c.profile.BecomeArtisan(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "You are now an artisan. Create your brand with `artisanmart brand save`.")
		return nil
	}),
}

var brandCmd = &cobra.Command{
	Use:   "brand",
	Short: "Show or save your brand",
}

var brandShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your brand",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		if err := c.requireLogin(); err != nil {
			return err
		}
		brand, err := c.brands.GetMine(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if brand == nil {
			fmt.Fprintln(out, "You have no brand yet.")
			return nil
		}
		printBrand(out, brand)
		return nil
	}),
}

var brandInput struct {
	name, description, logo string
}

var brandSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create your brand, or update it when it exists",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		if err := c.requireLogin(); err != nil {
			return err
		}
		form := forms.BrandForm{Name: brandInput.name, Description: brandInput.description}
		if brandInput.logo != "" {
			logo, err := forms.OpenLocalFile(brandInput.logo)
			if err != nil {
				return err
			}
			form.Logo = logo
		}
		brand, err := c.brands.Save(cmd.Context(), form)
		if err != nil {
			if printFieldErrors(cmd.ErrOrStderr(), err) {
				return fmt.Errorf("brand form is invalid")
			}
			return err
		}
		printBrand(cmd.OutOrStdout(), brand)
		return nil
	}),
}

func init() {
	f := profileUpdateCmd.Flags()
	f.StringVar(&profileUpdate.fullName, "full-name", "", "full name")
	f.StringVar(&profileUpdate.address, "address", "", "postal address")
	f.StringVar(&profileUpdate.phone, "phone", "", "phone number")
	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)

	f = brandSaveCmd.Flags()
	f.StringVar(&brandInput.name, "name", "", "brand name")
	f.StringVar(&brandInput.description, "description", "", "brand description, at least 10 characters")
	f.StringVar(&brandInput.logo, "logo", "", "path to a JPEG, PNG or WebP logo")
	brandCmd.AddCommand(brandShowCmd, brandSaveCmd)

	rootCmd.AddCommand(profileCmd, becomeArtisanCmd, brandCmd)
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "Username:  %s\n", u.Username)
	fmt.Fprintf(w, "Full name: %s\n", u.FullName)
	fmt.Fprintf(w, "Email:     %s\n", u.Email)
	fmt.Fprintf(w, "Phone:     %s\n", u.Phone)
	fmt.Fprintf(w, "Address:   %s\n", u.Address)
	fmt.Fprintf(w, "Role:      %s\n", u.Role)
}

func printBrand(w io.Writer, b *models.Brand) {
	fmt.Fprintf(w, "Brand:       %s\n", b.Name)
	fmt.Fprintf(w, "Description: %s\n", b.Description)
	if b.Logo != "" {
		fmt.Fprintf(w, "Logo:        %s\n", b.Logo)
	}
}
