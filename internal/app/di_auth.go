package app

import (
	"fmt"

	authHTTP "github.com/allisson/articles/internal/auth/http"
	authService "github.com/allisson/articles/internal/auth/service"
	authUseCase "github.com/allisson/articles/internal/auth/usecase"
)

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService()
	})
	return c.passwordService
}

// SessionService returns the JWT session service.
func (c *Container) SessionService() (authService.SessionService, error) {
	var err error
	c.sessionServiceInit.Do(func() {
		c.sessionService, err = c.initSessionService()
		if err != nil {
			c.setInitError("sessionService", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("sessionService"); storedErr != nil {
		return nil, storedErr
	}
	return c.sessionService, nil
}

// AuthUseCase returns the login and authentication use case.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		c.authUseCase, err = c.initAuthUseCase()
		if err != nil {
			c.setInitError("authUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("authUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// AuthHandler returns the login HTTP handler.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	var err error
	c.authHandlerInit.Do(func() {
		c.authHandler, err = c.initAuthHandler()
		if err != nil {
			c.setInitError("authHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("authHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// initSessionService creates the session service from the JWT settings.
func (c *Container) initSessionService() (authService.SessionService, error) {
	sessionService, err := authService.NewSessionService(c.config.JWTSecret, c.config.AuthTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}
	return sessionService, nil
}

// initAuthUseCase creates the auth use case with all its dependencies.
func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	userRepository, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	sessionService, err := c.SessionService()
	if err != nil {
		return nil, fmt.Errorf("failed to get session service for auth use case: %w", err)
	}

	baseUseCase := authUseCase.NewAuthUseCase(userRepository, c.PasswordService(), sessionService)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		return authUseCase.NewAuthUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAuthHandler creates the auth HTTP handler with all its dependencies.
func (c *Container) initAuthHandler() (*authHTTP.AuthHandler, error) {
	authUseCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for auth handler: %w", err)
	}

	return authHTTP.NewAuthHandler(authUseCase, c.Logger()), nil
}
