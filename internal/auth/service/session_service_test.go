package service

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/articles/internal/auth/domain"
	apperrors "github.com/allisson/articles/internal/errors"
)

const testSecret = "test-session-secret"

// testClock is a controllable time source.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newTestSessionService(t *testing.T, ttl time.Duration) (*sessionService, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)}
	svc, err := newSessionService(testSecret, ttl, clock.Now)
	require.NoError(t, err)
	return svc, clock
}

func signTestToken(t *testing.T, method jwt.SigningMethod, claims jwt.Claims, key any) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestNewSessionService(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, err := NewSessionService(testSecret, time.Hour)
		require.NoError(t, err)
		assert.IsType(t, &sessionService{}, svc)
	})

	t.Run("Error_EmptySecret", func(t *testing.T) {
		svc, err := NewSessionService("  ", time.Hour)
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("Error_NonPositiveTTL", func(t *testing.T) {
		svc, err := NewSessionService(testSecret, 0)
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestSessionService_Issue(t *testing.T) {
	identity := &domain.Identity{UserID: uuid.Must(uuid.NewV7()), Role: domain.EditorRole}

	t.Run("Success_ExpiresAfterTTL", func(t *testing.T) {
		svc, clock := newTestSessionService(t, 24*time.Hour)

		session, err := svc.Issue(identity)
		require.NoError(t, err)

		assert.NotEmpty(t, session.AccessToken)
		assert.Equal(t, clock.now.Add(24*time.Hour), session.ExpiresAt)
	})

	t.Run("Success_ClaimsAreSubRoleExp", func(t *testing.T) {
		svc, _ := newTestSessionService(t, time.Hour)

		session, err := svc.Issue(identity)
		require.NoError(t, err)

		parts := strings.Split(session.AccessToken, ".")
		require.Len(t, parts, 3)
		payload, err := base64.RawURLEncoding.DecodeString(parts[1])
		require.NoError(t, err)

		var claims map[string]any
		require.NoError(t, json.Unmarshal(payload, &claims))

		assert.Len(t, claims, 3)
		assert.Equal(t, identity.UserID.String(), claims["sub"])
		assert.Equal(t, "editor", claims["role"])
		assert.Contains(t, claims, "exp")
	})

	t.Run("Error_IncompleteIdentity", func(t *testing.T) {
		svc, _ := newTestSessionService(t, time.Hour)

		_, err := svc.Issue(nil)
		assert.Error(t, err)

		_, err = svc.Issue(&domain.Identity{UserID: uuid.Nil, Role: domain.ReaderRole})
		assert.Error(t, err)

		_, err = svc.Issue(&domain.Identity{UserID: uuid.Must(uuid.NewV7()), Role: "owner"})
		assert.Error(t, err)
	})
}

func TestSessionService_Parse(t *testing.T) {
	identity := &domain.Identity{UserID: uuid.Must(uuid.NewV7()), Role: domain.ReaderRole}

	t.Run("Success_RoundTrip", func(t *testing.T) {
		svc, _ := newTestSessionService(t, time.Hour)

		session, err := svc.Issue(identity)
		require.NoError(t, err)

		parsed, err := svc.Parse(session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, identity, parsed)
	})

	t.Run("Success_JustBeforeExpiry", func(t *testing.T) {
		svc, clock := newTestSessionService(t, time.Hour)

		session, err := svc.Issue(identity)
		require.NoError(t, err)

		clock.now = session.ExpiresAt.Add(-time.Second)
		_, err = svc.Parse(session.AccessToken)
		assert.NoError(t, err)
	})

	t.Run("Error_Expired", func(t *testing.T) {
		svc, clock := newTestSessionService(t, time.Hour)

		session, err := svc.Issue(identity)
		require.NoError(t, err)

		clock.now = clock.now.Add(time.Hour + time.Second)
		_, err = svc.Parse(session.AccessToken)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
		assert.False(t, apperrors.Is(err, apperrors.ErrForbidden))
	})

	t.Run("Error_WrongSecret", func(t *testing.T) {
		svc, clock := newTestSessionService(t, time.Hour)
		other, err := newSessionService("another-secret", time.Hour, clock.Now)
		require.NoError(t, err)

		session, err := other.Issue(identity)
		require.NoError(t, err)

		_, err = svc.Parse(session.AccessToken)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Error_Malformed", func(t *testing.T) {
		svc, _ := newTestSessionService(t, time.Hour)

		for _, token := range []string{"", "not-a-token", "a.b.c"} {
			_, err := svc.Parse(token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken, token)
		}
	})

	t.Run("Error_UnexpectedSigningMethod", func(t *testing.T) {
		svc, clock := newTestSessionService(t, time.Hour)
		token := signTestToken(t, jwt.SigningMethodHS384, sessionClaims{
			Role: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   identity.UserID.String(),
				ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
			},
		}, []byte(testSecret))

		_, err := svc.Parse(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Error_MissingRole", func(t *testing.T) {
		svc, clock := newTestSessionService(t, time.Hour)
		token := signTestToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": identity.UserID.String(),
			"exp": clock.now.Add(time.Hour).Unix(),
		}, []byte(testSecret))

		_, err := svc.Parse(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Error_MissingSubject", func(t *testing.T) {
		svc, clock := newTestSessionService(t, time.Hour)
		token := signTestToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
			"role": "admin",
			"exp":  clock.now.Add(time.Hour).Unix(),
		}, []byte(testSecret))

		_, err := svc.Parse(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Error_MissingExpiry", func(t *testing.T) {
		svc, _ := newTestSessionService(t, time.Hour)
		token := signTestToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  identity.UserID.String(),
			"role": "admin",
		}, []byte(testSecret))

		_, err := svc.Parse(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Error_InvalidSubjectAndRole", func(t *testing.T) {
		svc, clock := newTestSessionService(t, time.Hour)
		exp := clock.now.Add(time.Hour).Unix()

		badSubject := signTestToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "42", "role": "admin", "exp": exp,
		}, []byte(testSecret))
		_, err := svc.Parse(badSubject)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)

		badRole := signTestToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": identity.UserID.String(), "role": "superuser", "exp": exp,
		}, []byte(testSecret))
		_, err = svc.Parse(badRole)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}
