package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/articles/internal/auth/domain"
	"github.com/allisson/articles/internal/auth/http/dto"
	usecaseMocks "github.com/allisson/articles/internal/auth/usecase/mocks"
)

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func TestAuthHandler_LoginHandler(t *testing.T) {
	setup := func(t *testing.T) (*AuthHandler, *usecaseMocks.MockAuthUseCase) {
		authUseCase := usecaseMocks.NewMockAuthUseCase(t)
		return NewAuthHandler(authUseCase, newTestLogger()), authUseCase
	}

	t.Run("Success_ValidCredentials", func(t *testing.T) {
		handler, authUseCase := setup(t)
		output := &authDomain.LoginOutput{
			AccessToken: "signed.jwt.token",
			ExpiresAt:   time.Now().Add(time.Hour).UTC().Truncate(time.Second),
			UserID:      uuid.Must(uuid.NewV7()),
			Name:        "Admin User",
			Email:       "admin@admin.com",
			Role:        authDomain.AdminRole,
		}

		authUseCase.On("Login", mock.Anything, &authDomain.LoginInput{
			Email: "admin@admin.com", Password: "admin123",
		}).Return(output, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/auth/login",
			dto.LoginRequest{Email: "admin@admin.com", Password: "admin123"})
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "signed.jwt.token", response.AccessToken)
		assert.Equal(t, output.UserID.String(), response.User.ID)
		assert.Equal(t, "admin", response.User.Role)
		assert.True(t, output.ExpiresAt.Equal(response.ExpiresAt))
	})

	t.Run("Error_InvalidCredentials", func(t *testing.T) {
		handler, authUseCase := setup(t)

		authUseCase.On("Login", mock.Anything, mock.Anything).Return(nil, authDomain.ErrInvalidCredentials).Once()

		c, w := createTestContext(http.MethodPost, "/v1/auth/login",
			dto.LoginRequest{Email: "admin@admin.com", Password: "wrong"})
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "unauthorized", decodeBody(t, w)["error"])
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setup(t)

		c, w := createTestContext(http.MethodPost, "/v1/auth/login", nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("{")))
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeBody(t, w)["error"])
	})

	t.Run("Error_ValidationFailed", func(t *testing.T) {
		handler, _ := setup(t)

		c, w := createTestContext(http.MethodPost, "/v1/auth/login", dto.LoginRequest{Email: "admin@admin.com"})
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_error", decodeBody(t, w)["error"])
	})
}
