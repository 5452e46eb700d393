package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"artisanmart/internal/database"
	"artisanmart/internal/forms"
	"artisanmart/internal/handlers"
	"artisanmart/internal/repositories"
	"artisanmart/internal/sandbox"
	"artisanmart/internal/storage"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// startSandbox serves the sandbox API over HTTP and points the CLI at it.
func startSandbox(t *testing.T) *sandbox.MemoryMailer {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, database.MigrateSandbox(db))
	store, err := storage.NewDiskStorage(t.TempDir())
	require.NoError(t, err)

	mailer := &sandbox.MemoryMailer{}
	server := httptest.NewUnstartedServer(nil)
	publicURL := "http://" + server.Listener.Addr().String()
	app := handlers.NewApp(handlers.Services{
		Accounts: sandbox.NewAccountService(
			repositories.NewGORMUserRepository(db),
			repositories.NewGORMTokenRepository(db),
			mailer, "cli_test_secret", publicURL,
		),
		Catalog: sandbox.NewCatalog(
			repositories.NewGORMBrandRepository(db),
			repositories.NewGORMProductRepository(db),
			nil,
		),
		Uploads: sandbox.NewUploadService(store, publicURL),
	})
	server.Config.Handler = adaptor.FiberApp(app)
	server.Start()
	t.Cleanup(server.Close)

	t.Chdir(t.TempDir())
	t.Setenv("API_BASE_URL", server.URL)
	t.Setenv("CREDENTIALS_DSN", filepath.Join(t.TempDir(), "state", "session.db"))
	t.Setenv("RABBITMQ_URL", "")
	return mailer
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func lastToken(t *testing.T, mailer *sandbox.MemoryMailer) string {
	t.Helper()
	sent := mailer.Sent()
	require.NotEmpty(t, sent)
	return tokenFromLink(sent[len(sent)-1].Body)
}

func TestCLIAgainstSandbox(t *testing.T) {
	mailer := startSandbox(t)

	out, _, err := run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: anonymous")
	assert.Contains(t, out, "Sign in")

	out, _, err = run(t, "register",
		"--full-name", "Ana Weaver", "--email", "ana@example.com", "--phone", "0811",
		"--address", "Jl. Batik 1", "--password", "secret123", "--confirm-password", "secret123",
		"--accept-terms")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))

	_, _, err = run(t, "verify-email", lastToken(t, mailer))
	require.NoError(t, err)

	out, _, err = run(t, "login", "--email", "ana@example.com", "--password", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as ana@example.com (customer)")

	out, _, err = run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Role:   customer")
	assert.Contains(t, out, "Become an artisan")

	out, _, err = run(t, "become-artisan")
	require.NoError(t, err)
	assert.Contains(t, out, "You are now an artisan")

	out, _, err = run(t, "brand", "save", "--name", "Batik House", "--description", "Hand drawn batik from Solo")
	require.NoError(t, err)
	assert.Contains(t, out, "Batik House")

	image := filepath.Join(t.TempDir(), "cloth.png")
	require.NoError(t, os.WriteFile(image, pngBytes, 0o600))

	out, _, err = run(t, "products", "publish",
		"--set", "name=Batik cloth",
		"--set", "description=Hand drawn batik cloth",
		"--set", "price=45.5",
		"--set", "category="+forms.ProductCategories[1],
		"--set", "quantity=3",
		"--set", "terms_accepted=true",
		"--tag", "batik",
		"--image", image)
	require.NoError(t, err)
	assert.Contains(t, out, "Form 100% complete.")
	assert.Contains(t, out, `Product "Batik cloth" published`)

	out, _, err = run(t, "products", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Batik cloth")

	_, _, err = run(t, "logout")
	require.NoError(t, err)

	_, _, err = run(t, "products", "list")
	assert.ErrorContains(t, err, "not signed in")
}

func TestTokenFromLink(t *testing.T) {
	assert.Equal(t, "abc", tokenFromLink("abc"))
	assert.Equal(t, "abc", tokenFromLink(" http://x/verify-email?token=abc "))
	assert.Equal(t, "abc", tokenFromLink("http://x/reset-password?token=abc&next=/"))
}

func TestPrintFieldErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, printFieldErrors(&buf, fmt.Errorf("boom")))
	assert.Empty(t, buf.String())

	assert.True(t, printFieldErrors(&buf, forms.ValidationErrors{"price": "Price must be a positive number."}))
	assert.Equal(t, "  price: Price must be a positive number.\n", buf.String())
}

func TestEnsureParentDir(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "a", "b", "session.db")
	require.NoError(t, ensureParentDir(dsn))
	info, err := os.Stat(filepath.Join(dir, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, ensureParentDir("postgres://localhost/db"))
	assert.NoError(t, ensureParentDir("file::memory:"))
}
