package http

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/articles/internal/auth/domain"
	authUseCase "github.com/allisson/articles/internal/auth/usecase"
	apperrors "github.com/allisson/articles/internal/errors"
	"github.com/allisson/articles/internal/httputil"
	"github.com/allisson/articles/internal/metrics"
)

// Authorization decision labels recorded by AuthorizationMiddleware.
const (
	decisionAllowed         = "allowed"
	decisionDenied          = "denied"
	decisionUnauthenticated = "unauthenticated"
)

// extractBearerToken returns the token from an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func extractBearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")

	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	return token, token != ""
}

// AuthenticationMiddleware requires a valid bearer session token.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Validates signature and expiry using authUseCase.Authenticate()
// 3. Stores the identity in the request context for GetIdentity()
//
// Error handling:
//   - Missing or malformed Authorization header → 401 unauthorized
//   - Invalid, expired or badly signed token → 401 invalid_token
func AuthenticationMiddleware(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c)
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrUnauthenticated, logger)
			c.Abort()
			return
		}

		identity, err := authUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))

		logger.Debug("authentication successful",
			slog.String("user_id", identity.UserID.String()),
			slog.String("role", identity.Role.String()))

		c.Next()
	}
}

// OptionalAuthenticationMiddleware attaches the identity when a valid bearer token is
// present. Missing or invalid tokens leave the request anonymous instead of failing it.
func OptionalAuthenticationMiddleware(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c)
		if !ok {
			c.Next()
			return
		}

		identity, err := authUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("optional authentication ignored", slog.String("error", err.Error()))
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// AuthorizationMiddleware requires the authenticated identity to hold at least one of the
// given capabilities. It must run after AuthenticationMiddleware.
//
// Error handling:
//   - No identity in context → 401 unauthorized
//   - Role outside every capability's allowed set → 403 forbidden
func AuthorizationMiddleware(
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
	capabilities ...authDomain.Capability,
) gin.HandlerFunc {
	names := make([]string, 0, len(capabilities))
	var allowedRoles []string
	for _, capability := range capabilities {
		names = append(names, string(capability))
		for _, role := range authDomain.AllowedRoles(capability) {
			if !slices.Contains(allowedRoles, role.String()) {
				allowedRoles = append(allowedRoles, role.String())
			}
		}
	}
	capabilityLabel := strings.Join(names, "|")
	allowedLabel := strings.Join(allowedRoles, "|")

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		identity, _ := GetIdentity(ctx)

		err := authDomain.RequireCapability(identity, capabilities...)
		switch {
		case err == nil:
			businessMetrics.RecordAuthorization(ctx, capabilityLabel, decisionAllowed)
		case apperrors.Is(err, authDomain.ErrUnauthenticated):
			businessMetrics.RecordAuthorization(ctx, capabilityLabel, decisionUnauthenticated)
			logger.Debug("authorization failed: no authenticated identity in context")
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		default:
			businessMetrics.RecordAuthorization(ctx, capabilityLabel, decisionDenied)
			logger.Debug("authorization failed: insufficient role",
				slog.String("user_id", identity.UserID.String()),
				slog.String("role", identity.Role.String()),
				slog.String("capability", capabilityLabel),
				slog.String("allowed_roles", allowedLabel))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
