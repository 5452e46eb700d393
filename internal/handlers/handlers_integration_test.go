package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"artisanmart/internal/database"
	"artisanmart/internal/handlers"
	"artisanmart/internal/models"
	"artisanmart/internal/repositories"
	"artisanmart/internal/sandbox"
	"artisanmart/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const publicURL = "http://sandbox.test"

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type testSandbox struct {
	app    *fiber.App
	mailer *sandbox.MemoryMailer
}

// setupApp sets up the sandbox app on a private in-memory SQLite database and
// a temporary storage directory.
func setupApp(t *testing.T) *testSandbox {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, database.MigrateSandbox(db))

	store, err := storage.NewDiskStorage(t.TempDir())
	require.NoError(t, err)

	mailer := &sandbox.MemoryMailer{}
	accounts := sandbox.NewAccountService(
		repositories.NewGORMUserRepository(db),
		repositories.NewGORMTokenRepository(db),
		mailer, "test_jwt_secret", publicURL,
	)
	catalog := sandbox.NewCatalog(
		repositories.NewGORMBrandRepository(db),
		repositories.NewGORMProductRepository(db),
		nil,
	)
	app := handlers.NewApp(handlers.Services{
		Accounts: accounts,
		Catalog:  catalog,
		Uploads:  sandbox.NewUploadService(store, publicURL),
	})
	return &testSandbox{app: app, mailer: mailer}
}

func (s *testSandbox) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded
}

// lastToken extracts the token from the most recent email.
func (s *testSandbox) lastToken(t *testing.T) string {
	t.Helper()
	sent := s.mailer.Sent()
	require.NotEmpty(t, sent)
	_, token, found := strings.Cut(sent[len(sent)-1].Body, "token=")
	require.True(t, found)
	return token
}

func (s *testSandbox) registerAndLogin(t *testing.T, email, password string) string {
	t.Helper()
	resp, _ := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username":  strings.Split(email, "@")[0],
		"email":     email,
		"password":  password,
		"full_name": "Test User",
		"address":   "Jl. Test 1",
		"phone":     "0811",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/auth/verify-email?token="+s.lastToken(t), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAuthRegisterAndLogin(t *testing.T) {
	s := setupApp(t)

	reg := map[string]string{
		"username":  "testuser",
		"email":     "test@example.com",
		"password":  "password123",
		"full_name": "Test User",
		"address":   "Jl. Test 1",
		"phone":     "0811",
	}
	resp, body := s.do(t, http.MethodPost, "/auth/register", "", reg)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, body["message"], "verify your account")

	// Duplicate registration
	resp, body = s.do(t, http.MethodPost, "/auth/register", "", reg)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, sandbox.ErrAccountExists.Error(), body["message"])

	creds := map[string]string{"email": "test@example.com", "password": "password123"}

	// Unverified accounts cannot sign in
	resp, _ = s.do(t, http.MethodPost, "/auth/login", "", creds)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/auth/verify-email?token="+s.lastToken(t), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.do(t, http.MethodPost, "/auth/login", "", creds)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
	user, _ := body["user"].(map[string]interface{})
	assert.Equal(t, "customer", user["role"])

	resp, body = s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "test@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestPasswordReset(t *testing.T) {
	s := setupApp(t)
	s.registerAndLogin(t, "reset@example.com", "password123")

	resp, _ := s.do(t, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": "reset@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token := s.lastToken(t)

	resp, _ = s.do(t, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/auth/reset-password", "", map[string]string{"token": token, "new_password": "newpassword1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := s.do(t, http.MethodPost, "/auth/reset-password", "", map[string]string{"token": token, "new_password": "newpassword1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", body["message"])

	resp, _ = s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "reset@example.com", "password": "newpassword1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProfileBrandAndProducts(t *testing.T) {
	s := setupApp(t)
	token := s.registerAndLogin(t, "artisan@example.com", "password123")

	resp, body := s.do(t, http.MethodPatch, "/profile", token, map[string]string{"full_name": "Ana Weaver"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ana Weaver", body["full_name"])

	brand := map[string]string{"brand_name": "Batik House", "brand_description": "Hand drawn batik from Solo."}
	resp, body = s.do(t, http.MethodPost, "/brands", token, brand)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Need to register as Artisan.", body["message"])

	resp, _ = s.do(t, http.MethodGet, "/brands/me", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPut, "/become-artisan", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.do(t, http.MethodPut, "/become-artisan", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	product := map[string]interface{}{
		"product_name":   "Clay Vase",
		"product_pic":    []string{},
		"product_video":  []string{},
		"category":       "Pottery & Ceramics",
		"description":    "Hand thrown stoneware vase with ash glaze.",
		"tags":           []string{"clay"},
		"order_quantity": 3,
		"price":          29.99,
	}
	resp, body = s.do(t, http.MethodPost, "/products", token, product)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Brand does not exist.", body["message"])

	resp, _ = s.do(t, http.MethodPost, "/brands", token, brand)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = s.do(t, http.MethodPost, "/brands", token, brand)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	brand["brand_name"] = "Batik House Solo"
	resp, body = s.do(t, http.MethodPatch, "/brands/me", token, brand)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Batik House Solo", body["brand_name"])

	resp, body = s.do(t, http.MethodPost, "/products", token, product)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := uint(body["product_id"].(float64))

	req := httptest.NewRequest(http.MethodGet, "/products/get-all-producs", nil)
	allResp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	var all []models.Product
	require.NoError(t, json.NewDecoder(allResp.Body).Decode(&all))
	allResp.Body.Close()
	require.Len(t, all, 1)
	assert.Equal(t, []string{"clay"}, all[0].Tags)
	assert.Equal(t, []string{}, all[0].Pictures)

	other := s.registerAndLogin(t, "other@example.com", "password123")
	resp, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/products/%d", id), other, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = s.do(t, http.MethodDelete, fmt.Sprintf("/products/%d", id), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body["message"], "deleted successfully")

	resp, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/products/%d", id), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadAndServeFile(t *testing.T) {
	s := setupApp(t)
	token := s.registerAndLogin(t, "up@example.com", "password123")

	upload := func(uploadType string, name string, data []byte) (*http.Response, map[string]interface{}) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("upload_type", uploadType))
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, name))
		h.Set("Content-Type", "application/octet-stream")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := s.app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		var decoded map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
		return resp, decoded
	}

	resp, body := upload("product photo", "vase.png", pngBytes)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	urls, _ := body["urls"].([]interface{})
	require.Len(t, urls, 1)
	url := urls[0].(string)
	assert.True(t, strings.HasPrefix(url, publicURL+"/files/photos/"))

	req := httptest.NewRequest(http.MethodGet, strings.TrimPrefix(url, publicURL), nil)
	fileResp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	data, _ := io.ReadAll(fileResp.Body)
	fileResp.Body.Close()
	assert.Equal(t, http.StatusOK, fileResp.StatusCode)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, "image/png", fileResp.Header.Get("Content-Type"))

	resp, body = upload("product video", "vase.png", pngBytes)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "Invalid file type")

	resp, _ = upload("avatar", "vase.png", pngBytes)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = upload("product photo", "notes.png", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEndpointsWithoutAuth(t *testing.T) {
	s := setupApp(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/products"},
		{http.MethodPost, "/products"},
		{http.MethodGet, "/profile"},
		{http.MethodGet, "/brands/me"},
		{http.MethodPut, "/become-artisan"},
		{http.MethodPost, "/upload"},
	} {
		resp, _ := s.do(t, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", tc.method, tc.path)
	}

	resp, _ := s.do(t, http.MethodGet, "/profile", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/products/get-all-producs", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
