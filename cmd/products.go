package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"artisanmart/internal/apiclient"
	"artisanmart/internal/forms"
	"artisanmart/internal/models"
	"artisanmart/internal/services"

	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Publish and manage products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your products",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		if err := c.requireLogin(); err != nil {
			return err
		}
		products, err := c.products.ListMine(cmd.Context())
		if err != nil {
			return err
		}
		printProducts(cmd.OutOrStdout(), products)
		return nil
	}),
}

var productsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse every listed product",
	Args:  cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		products, err := c.products.Catalog(cmd.Context())
		if err != nil {
			return err
		}
		printProducts(cmd.OutOrStdout(), products)
		return nil
	}),
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete one of your products",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		if err := c.requireLogin(); err != nil {
			return err
		}
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		if err := c.products.Delete(cmd.Context(), uint(id)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Product %d deleted.\n", id)
		return nil
	}),
}

var productsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the product categories and quantity units",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Categories:")
		for _, c := range forms.ProductCategories {
			fmt.Fprintf(out, "  %s\n", c)
		}
		fmt.Fprintf(out, "Quantity units: %s\n", strings.Join(forms.QuantityUnits, ", "))
	},
}

var publishInput struct {
	fields []string
	tags   []string
	images []string
	videos []string
	dryRun bool
}

var productsPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Fill in the product form and submit it",
	Long: `Fill in the product form field by field and submit it. Images and videos
are uploaded first, then the product is created.

	artisanmart products publish \
		--set name="Clay bowl" --set price=29.99 --set category=Pottery \
		--set description="Hand thrown stoneware bowl" --set quantity=4 \
		--set terms_accepted=true --tag stoneware --image bowl.jpg

Run with --dry-run to only check the form.`,
	Args: cobra.NoArgs,
	RunE: withClient(func(cmd *cobra.Command, args []string, c *client) error {
		if err := c.requireLogin(); err != nil {
			return err
		}
		out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

		form := forms.NewProductForm(nil)
		defer form.Dispose()
		if err := fillProductForm(form, errOut); err != nil {
			return err
		}
		fmt.Fprintf(out, "Form %d%% complete.\n", form.Progress())

		if publishInput.dryRun {
			if _, err := form.Validate(); err != nil {
				printFieldErrors(errOut, err)
				return errors.New("product form is invalid")
			}
			fmt.Fprintln(out, "Form is valid.")
			return nil
		}

		product, err := c.products.Submit(cmd.Context(), form)
		if err != nil {
			return explainSubmitError(errOut, err)
		}
		fmt.Fprintf(out, "Product %q published (id %d).\n", product.Name, product.ID)
		return nil
	}),
}

func init() {
	f := productsPublishCmd.Flags()
	f.StringArrayVar(&publishInput.fields, "set", nil, "field=value, repeatable (see `products categories` for category names)")
	f.StringArrayVar(&publishInput.tags, "tag", nil, "tag, repeatable")
	f.StringArrayVar(&publishInput.images, "image", nil, "path to a JPEG, PNG or WebP image, repeatable")
	f.StringArrayVar(&publishInput.videos, "video", nil, "path to an MP4, WebM or QuickTime video, repeatable")
	f.BoolVar(&publishInput.dryRun, "dry-run", false, "validate the form without submitting")

	productsCmd.AddCommand(productsListCmd, productsCatalogCmd, productsDeleteCmd, productsCategoriesCmd, productsPublishCmd)
	rootCmd.AddCommand(productsCmd)
}

// fillProductForm applies the command line to form, reporting field messages
// and rejected files as it goes like the form would inline.
func fillProductForm(form *forms.ProductForm, w io.Writer) error {
	for _, kv := range publishInput.fields {
		field, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--set %q: expected field=value", kv)
		}
		msg, err := form.SetField(strings.TrimSpace(field), value)
		if err != nil {
			return fmt.Errorf("--set %q: %w", kv, err)
		}
		if msg != "" {
			fmt.Fprintf(w, "  %s: %s\n", field, msg)
		}
	}

	for _, tag := range publishInput.tags {
		if _, err := form.AddTag(tag); err != nil {
			fmt.Fprintf(w, "  tag %q: %v\n", tag, err)
		}
	}

	if err := stageFiles(form.Images(), publishInput.images, w); err != nil {
		return err
	}
	return stageFiles(form.Videos(), publishInput.videos, w)
}

func stageFiles(list *forms.MediaList, paths []string, w io.Writer) error {
	for _, p := range paths {
		f, err := forms.OpenLocalFile(p)
		if err != nil {
			return err
		}
		for _, r := range list.Stage(f) {
			fmt.Fprintf(w, "  %s\n", r.Reason)
		}
	}
	return nil
}

func explainSubmitError(w io.Writer, err error) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return errors.New("not signed in; run `artisanmart login` first")
	}
	var submitErr *services.SubmitError
	if !errors.As(err, &submitErr) {
		return err
	}
	if submitErr.Stage == services.StageValidate {
		printFieldErrors(w, submitErr.Err)
	}
	return errors.New(submitErr.Reason)
}

func printProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products.")
		return
	}
	for _, p := range products {
		fmt.Fprintf(w, "%5d  %-30s %10.2f  %-20s %d %s\n", p.ID, p.Name, p.Price, p.Category, p.OrderQuantity, p.QuantityUnit)
	}
}
