// Package integration provides end-to-end tests for the Articles API.
// Tests run the full container against both PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/articles/internal/app"
	articleDTO "github.com/allisson/articles/internal/article/http/dto"
	authDomain "github.com/allisson/articles/internal/auth/domain"
	authDTO "github.com/allisson/articles/internal/auth/http/dto"
	"github.com/allisson/articles/internal/config"
	"github.com/allisson/articles/internal/testutil"
	userDomain "github.com/allisson/articles/internal/user/domain"
	userDTO "github.com/allisson/articles/internal/user/http/dto"
)

var drivers = []struct {
	name     string
	dbDriver string
}{
	{"PostgreSQL", "postgres"},
	{"MySQL", "mysql"},
}

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	token string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// login exchanges credentials for an access token.
func (ctx *integrationTestContext) login(t *testing.T, email, password string) string {
	t.Helper()

	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/auth/login",
		authDTO.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var response authDTO.LoginResponse
	require.NoError(t, json.Unmarshal(body, &response))
	require.NotEmpty(t, response.AccessToken)
	return response.AccessToken
}

// seedUser creates an account with the given role through the user use case.
func (ctx *integrationTestContext) seedUser(t *testing.T, name, email, password string, role authDomain.Role) {
	t.Helper()

	users, err := ctx.container.UserUseCase()
	require.NoError(t, err, "failed to get user use case")

	_, _, err = users.Upsert(context.Background(), &userDomain.UpsertUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err, "failed to seed user "+email)
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		testutil.SkipIfNoPostgres(t)
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		testutil.SkipIfNoMySQL(t)
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	cfg := &config.Config{
		DBDriver:             dbDriver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		ServerHost:           "localhost",
		ServerPort:           8080,
		LogLevel:             "error",
		JWTSecret:            "integration-test-secret-0123456789",
		AuthTokenExpiration:  time.Hour,
		OutboxInterval:       time.Second,
		OutboxBatchSize:      10,
		OutboxMaxRetries:     3,
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	ctx := &integrationTestContext{
		container: container,
		db:        db,
		server:    httptest.NewServer(handler),
		dbDriver:  dbDriver,
	}

	ctx.seedUser(t, "Admin User", "admin@admin.com", "admin123", authDomain.AdminRole)
	ctx.seedUser(t, "Editor User", "editor@editor.com", "editor123", authDomain.EditorRole)
	ctx.seedUser(t, "Reader User", "reader@reader.com", "reader123", authDomain.ReaderRole)

	return ctx
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		if ctx.dbDriver == "postgres" {
			testutil.CleanupPostgresDB(t, ctx.db)
		} else {
			testutil.CleanupMySQLDB(t, ctx.db)
		}
		testutil.TeardownDB(t, ctx.db)
	}
}

func TestIntegration_Health_BasicChecks(t *testing.T) {
	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_HealthCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				assert.JSONEq(t, `{"status":"healthy"}`, string(body))
			})

			t.Run("02_ReadinessCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				assert.JSONEq(t, `{"status":"ready","components":{"database":"ok"}}`, string(body))
			})
		})
	}
}

func TestIntegration_Auth_Login(t *testing.T) {
	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_ValidCredentials", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/auth/login",
					authDTO.LoginRequest{Email: "editor@editor.com", Password: "editor123"}, "")
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response authDTO.LoginResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.NotEmpty(t, response.AccessToken)
				assert.True(t, response.ExpiresAt.After(time.Now()))
				assert.Equal(t, "editor", response.User.Role)
				assert.NotContains(t, string(body), "password")
			})

			t.Run("02_LegacyLoginRoute", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/users/login",
					authDTO.LoginRequest{Email: "reader@reader.com", Password: "reader123"}, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			})

			t.Run("03_WrongPassword", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/auth/login",
					authDTO.LoginRequest{Email: "editor@editor.com", Password: "wrong-password"}, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
				assert.Contains(t, string(body), "unauthorized")
			})

			t.Run("04_UnknownEmail", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/auth/login",
					authDTO.LoginRequest{Email: "nobody@example.com", Password: "whatever1"}, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("05_InvalidToken", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/articles", nil, "not-a-jwt")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
				assert.Contains(t, string(body), "invalid_token")
			})
		})
	}
}

func TestIntegration_Users_CompleteFlow(t *testing.T) {
	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			adminToken := ctx.login(t, "admin@admin.com", "admin123")
			var registeredID string

			t.Run("01_PublicRegistrationIsReader", func(t *testing.T) {
				role := "admin"
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/users", userDTO.CreateUserRequest{
					Name:     "Public User",
					Email:    "public@example.com",
					Password: "public123",
					Role:     &role,
				}, "")
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var response userDTO.UserResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "reader", response.Role)
				assert.NotContains(t, string(body), "public123")
				registeredID = response.ID
			})

			t.Run("02_DuplicateEmail", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/users", userDTO.CreateUserRequest{
					Name:     "Again",
					Email:    "public@example.com",
					Password: "public123",
				}, "")
				assert.Equal(t, http.StatusConflict, resp.StatusCode)
			})

			t.Run("03_AdminAssignsRole", func(t *testing.T) {
				role := "editor"
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/users", userDTO.CreateUserRequest{
					Name:     "Second Editor",
					Email:    "editor2@example.com",
					Password: "editor234",
					Role:     &role,
				}, adminToken)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var response userDTO.UserResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "editor", response.Role)
			})

			t.Run("04_ListRequiresAdmin", func(t *testing.T) {
				readerToken := ctx.login(t, "reader@reader.com", "reader123")
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/users", nil, readerToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)

				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/users?limit=50", nil, adminToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response userDTO.ListUsersResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Len(t, response.Data, 5)
			})

			t.Run("05_UpdateAndGet", func(t *testing.T) {
				name := "Renamed User"
				resp, body := ctx.makeRequest(t, http.MethodPut, "/v1/users/"+registeredID,
					userDTO.UpdateUserRequest{Name: &name}, adminToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/users/"+registeredID, nil, adminToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response userDTO.UserResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "Renamed User", response.Name)
			})

			t.Run("06_NewPasswordLogsIn", func(t *testing.T) {
				password := "changed123"
				resp, _ := ctx.makeRequest(t, http.MethodPut, "/v1/users/"+registeredID,
					userDTO.UpdateUserRequest{Password: &password}, adminToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				assert.NotEmpty(t, ctx.login(t, "public@example.com", "changed123"))
			})

			t.Run("07_Delete", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodDelete, "/v1/users/"+registeredID, nil, adminToken)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/users/"+registeredID, nil, adminToken)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})
		})
	}
}

func TestIntegration_Articles_CompleteFlow(t *testing.T) {
	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			adminToken := ctx.login(t, "admin@admin.com", "admin123")
			editorToken := ctx.login(t, "editor@editor.com", "editor123")
			readerToken := ctx.login(t, "reader@reader.com", "reader123")
			var articleID string

			t.Run("01_EditorCreates", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/articles", articleDTO.CreateArticleRequest{
					Title:     "First article",
					Content:   "Hello world",
					Published: true,
				}, editorToken)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var response articleDTO.ArticleResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "First article", response.Title)
				assert.True(t, response.Published)
				articleID = response.ID
			})

			t.Run("02_ReaderCannotCreate", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/articles", articleDTO.CreateArticleRequest{
					Title:   "Nope",
					Content: "Nope",
				}, readerToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			t.Run("03_ReaderReads", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/articles", nil, readerToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var list articleDTO.ListArticlesResponse
				require.NoError(t, json.Unmarshal(body, &list))
				require.Len(t, list.Data, 1)
				assert.Equal(t, articleID, list.Data[0].ID)

				resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/articles/"+articleID, nil, readerToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var article articleDTO.ArticleResponse
				require.NoError(t, json.Unmarshal(body, &article))
				require.NotNil(t, article.Author)
				assert.Equal(t, "editor@editor.com", article.Author.Email)
			})

			t.Run("04_OwnerUpdates", func(t *testing.T) {
				title := "Edited article"
				published := false
				resp, body := ctx.makeRequest(t, http.MethodPut, "/v1/articles/"+articleID,
					articleDTO.UpdateArticleRequest{Title: &title, Published: &published}, editorToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response articleDTO.ArticleResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "Edited article", response.Title)
				assert.Equal(t, "Hello world", response.Content)
				assert.False(t, response.Published)
			})

			t.Run("05_NonOwnerIsForbidden", func(t *testing.T) {
				title := "Hijacked"
				resp, _ := ctx.makeRequest(t, http.MethodPut, "/v1/articles/"+articleID,
					articleDTO.UpdateArticleRequest{Title: &title}, adminToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodDelete, "/v1/articles/"+articleID, nil, adminToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			t.Run("06_OwnerDeletes", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodDelete, "/v1/articles/"+articleID, nil, editorToken)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/articles/"+articleID, nil, readerToken)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})

			t.Run("07_OutboxDrains", func(t *testing.T) {
				processor, err := ctx.container.OutboxUseCase()
				require.NoError(t, err)
				require.NoError(t, processor.ProcessEvents(context.Background()))

				var pending int
				err = ctx.db.QueryRow("SELECT COUNT(*) FROM outbox_events WHERE status = 'pending'").Scan(&pending)
				require.NoError(t, err)
				assert.Equal(t, 0, pending)
			})
		})
	}
}
