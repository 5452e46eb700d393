package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"artisanmart/internal/config"
	"artisanmart/internal/database"
	"artisanmart/internal/handlers"
	"artisanmart/internal/repositories"
	"artisanmart/internal/sandbox"
	"artisanmart/internal/storage"
	"artisanmart/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

// sandboxCmd represents the sandbox command
var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run a local stand-in for the marketplace API",
	Long: `Runs a local implementation of the marketplace API for development
and testing. Accounts, brands and products are kept in SQLite (or Postgres),
uploads on disk (or MinIO), and emails are written to the log.

	artisanmart sandbox
	API_BASE_URL=http://localhost:8000 artisanmart login ...
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The server always logs.
		log.SetOutput(os.Stderr)

		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		return runSandbox(cmd, cfg.Sandbox, cfg.RabbitMQURL)
	},
}

func init() {
	rootCmd.AddCommand(sandboxCmd)
}

func runSandbox(cmd *cobra.Command, cfg config.SandboxConfig, rabbitMQURL string) error {
	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	if err := database.MigrateSandbox(db); err != nil {
		return err
	}

	// --- Object storage ---
	store, err := storage.New(cmd.Context(), cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// --- Events (optional) ---
	var publisher sandbox.Publisher
	if rabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, catalog events disabled: %v", err)
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}

	// --- Services ---
	accounts := sandbox.NewAccountService(
		repositories.NewGORMUserRepository(db),
		repositories.NewGORMTokenRepository(db),
		sandbox.LogMailer{},
		cfg.JWTSecret,
		cfg.PublicURL,
	)
	catalog := sandbox.NewCatalog(
		repositories.NewGORMBrandRepository(db),
		repositories.NewGORMProductRepository(db),
		publisher,
	)
	uploads := sandbox.NewUploadService(store, cfg.PublicURL)

	app := handlers.NewApp(handlers.Services{
		Accounts: accounts,
		Catalog:  catalog,
		Uploads:  uploads,
	})

	// --- Start HTTP Server ---
	log.Printf("Starting sandbox API on %s (storage: %s)", cfg.Addr, store.Bucket())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("sandbox failed to start: %w", err)
	case <-quit:
	}

	log.Println("Shutting down sandbox...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Sandbox gracefully stopped")
	return nil
}
