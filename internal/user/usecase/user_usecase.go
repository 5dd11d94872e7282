// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/articles/internal/auth/domain"
	authService "github.com/allisson/articles/internal/auth/service"
	"github.com/allisson/articles/internal/database"
	apperrors "github.com/allisson/articles/internal/errors"
	outboxDomain "github.com/allisson/articles/internal/outbox/domain"
	"github.com/allisson/articles/internal/user/domain"
)

// UseCase defines the interface for user business logic operations
type UseCase interface {
	// Create registers a user. The requested role is honoured only for admin requesters;
	// a nil requester is an anonymous registration.
	Create(ctx context.Context, requester *authDomain.Identity, input *domain.CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input *domain.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Upsert creates the user or, when the email is taken, resets only its role.
	// The boolean reports whether a new user was created.
	Upsert(ctx context.Context, input *domain.UpsertUserInput) (*domain.User, bool, error)
}

// UserRepository defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
}

// OutboxEventRepository defines the outbox operation needed to publish user events
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// userEventPayload is the JSON body of user outbox events.
type userEventPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

// UserUseCase handles user-related business logic
type UserUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	outboxRepo      OutboxEventRepository
	passwordService authService.PasswordService
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	outboxRepo OutboxEventRepository,
	passwordService authService.PasswordService,
) UseCase {
	return &UserUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		outboxRepo:      outboxRepo,
		passwordService: passwordService,
	}
}

// Create registers a new user and records a user.created event in the same transaction
func (uc *UserUseCase) Create(
	ctx context.Context,
	requester *authDomain.Identity,
	input *domain.CreateUserInput,
) (*domain.User, error) {
	role := authDomain.RegistrationRole(requester, input.Role)
	if !role.IsValid() {
		return nil, apperrors.Wrapf(authDomain.ErrInvalidRole, "role %q", role)
	}

	hashedPassword, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      strings.TrimSpace(input.Name),
		Email:     domain.NormalizeEmail(input.Email),
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return uc.publish(ctx, outboxDomain.UserCreatedEvent, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Get retrieves a user by ID
func (uc *UserUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.Get(ctx, id)
}

// List retrieves users newest first
func (uc *UserUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return uc.userRepo.List(ctx, offset, limit)
}

// Update applies the non-nil fields of input to the user
func (uc *UserUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input *domain.UpdateUserInput,
) (*domain.User, error) {
	user, err := uc.userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		user.Email = domain.NormalizeEmail(*input.Email)
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, apperrors.Wrapf(authDomain.ErrInvalidRole, "role %q", *input.Role)
		}
		user.Role = *input.Role
	}
	if input.Password != nil {
		hashedPassword, err := uc.passwordService.Hash(*input.Password)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to hash password")
		}
		user.Password = hashedPassword
	}
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user and records a user.deleted event in the same transaction
func (uc *UserUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.userRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := uc.userRepo.Delete(ctx, id); err != nil {
			return err
		}
		return uc.publish(ctx, outboxDomain.UserDeletedEvent, user)
	})
}

// Upsert creates the user when the email is unknown; otherwise only the role is reset
func (uc *UserUseCase) Upsert(ctx context.Context, input *domain.UpsertUserInput) (*domain.User, bool, error) {
	user, err := uc.userRepo.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil && !apperrors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	if user == nil {
		admin := &authDomain.Identity{Role: authDomain.AdminRole}
		created, err := uc.Create(ctx, admin, &domain.CreateUserInput{
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
			Role:     &input.Role,
		})
		if err != nil {
			return nil, false, err
		}
		return created, true, nil
	}

	if user.Role == input.Role {
		return user, false, nil
	}

	user.Role = input.Role
	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, false, err
	}
	return user, false, nil
}

func (uc *UserUseCase) publish(ctx context.Context, eventType string, user *domain.User) error {
	event, err := outboxDomain.NewOutboxEvent(eventType, userEventPayload{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role.String(),
	})
	if err != nil {
		return err
	}

	if err := uc.outboxRepo.Create(ctx, event); err != nil {
		return apperrors.Wrap(err, "failed to create outbox event")
	}
	return nil
}
