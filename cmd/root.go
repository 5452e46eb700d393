package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"artisanmart/internal/apiclient"
	"artisanmart/internal/config"
	"artisanmart/internal/database"
	"artisanmart/internal/repositories"
	"artisanmart/internal/services"
	"artisanmart/internal/session"
	"artisanmart/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "artisanmart",
	Short: "Client for the artisan marketplace",
	Long: `artisanmart signs you in to the handicraft marketplace, manages your
profile and brand, and publishes products from the command line.

	artisanmart login --email ana@example.com --password ...
	artisanmart products publish --set name="Clay bowl" --set price=29.99 ...
	artisanmart sandbox   # local stand-in API for development
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !verbose {
			log.SetOutput(io.Discard)
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./artisanmart.yaml or ~/.artisanmart/artisanmart.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and internal events to stderr")
}

// client is the wired client stack shared by the account and catalog commands.
type client struct {
	cfg      config.Config
	session  *session.Manager
	api      *apiclient.Client
	auth     *services.AuthService
	profile  *services.ProfileService
	brands   *services.BrandService
	products *services.ProductService
	closers  []func() error
}

// newClient loads configuration, opens the credential store, hydrates the
// session and wires the request layer and flows on top of it.
func newClient(cmd *cobra.Command) (*client, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	if err := ensureParentDir(cfg.CredentialsDSN); err != nil {
		return nil, err
	}
	db, err := database.Open(database.DriverFromDSN(cfg.CredentialsDSN), cfg.CredentialsDSN)
	if err != nil {
		return nil, err
	}
	if err := database.MigrateCredentials(db); err != nil {
		return nil, err
	}

	c := &client{cfg: cfg}
	if sqlDB, err := db.DB(); err == nil {
		c.closers = append(c.closers, sqlDB.Close)
	}

	var mq *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			// Events are optional for the client.
			log.Printf("Warning: events disabled: %v", err)
			mq = nil
		} else {
			c.closers = append(c.closers, mq.Close)
		}
	}

	var sessionPub session.Publisher
	var productPub services.Publisher
	if mq != nil {
		sessionPub = mq
		productPub = mq
	}

	c.session = session.NewManager(repositories.NewGORMCredentialRepository(db), sessionPub)
	errOut := cmd.ErrOrStderr()
	c.session.OnLanding(func() {
		fmt.Fprintln(errOut, "Your session has expired. Please sign in again with `artisanmart login`.")
	})
	c.session.Initialize()

	c.api = apiclient.New(cfg.APIBaseURL, c.session, cfg.HTTPTimeout)
	c.auth = services.NewAuthService(c.api, c.session)
	c.profile = services.NewProfileService(c.api, c.session)
	c.brands = services.NewBrandService(c.api)
	c.products = services.NewProductService(c.api, productPub)
	return c, nil
}

func (c *client) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}
}

// requireLogin fails early when no session is present.
func (c *client) requireLogin() error {
	if !c.session.State().IsAuthenticated() {
		return fmt.Errorf("not signed in; run `artisanmart login` first")
	}
	return nil
}

// withClient builds the client stack for one command invocation.
func withClient(run func(cmd *cobra.Command, args []string, c *client) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()
		return run(cmd, args, c)
	}
}

// ensureParentDir creates the directory of a file-backed SQLite DSN.
func ensureParentDir(dsn string) error {
	if database.DriverFromDSN(dsn) != database.DriverSQLite || strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}
