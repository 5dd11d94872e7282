package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/allisson/articles/internal/auth/domain"
	apperrors "github.com/allisson/articles/internal/errors"
)

// sessionClaims is the token payload: exactly sub, role and exp.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// sessionService implements SessionService with HMAC-SHA256 signed JWTs.
type sessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// Issue signs a new session token for the identity.
func (s *sessionService) Issue(identity *domain.Identity) (*domain.Session, error) {
	if identity == nil || identity.UserID == uuid.Nil || !identity.Role.IsValid() {
		return nil, apperrors.New("cannot issue session for an incomplete identity")
	}

	// exp has second precision on the wire
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)

	claims := sessionClaims{
		Role: identity.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign session token")
	}

	return &domain.Session{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
	}, nil
}

// Parse validates the token and recovers the identity it was issued for.
func (s *sessionService) Parse(token string) (*domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.Wrap(domain.ErrInvalidToken, "empty token")
	}

	var claims sessionClaims
	_, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(domain.ErrInvalidToken, err.Error())
	}

	if claims.Subject == "" || claims.Role == "" {
		return nil, apperrors.Wrap(domain.ErrInvalidToken, "missing required claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperrors.Wrap(domain.ErrInvalidToken, "invalid subject")
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return nil, apperrors.Wrap(domain.ErrInvalidToken, "invalid role")
	}

	return &domain.Identity{UserID: userID, Role: role}, nil
}

// NewSessionService creates a SessionService signing tokens with secret that expire after ttl.
func NewSessionService(secret string, ttl time.Duration) (SessionService, error) {
	return newSessionService(secret, ttl, time.Now)
}

func newSessionService(secret string, ttl time.Duration, now func() time.Time) (*sessionService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, apperrors.New("session secret must not be empty")
	}
	if ttl <= 0 {
		return nil, apperrors.New("session ttl must be positive")
	}

	return &sessionService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(now),
		),
	}, nil
}
