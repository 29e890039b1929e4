package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicabemestar/clinic-api/internal/auth"
	"github.com/clinicabemestar/clinic-api/internal/model"
	"github.com/clinicabemestar/clinic-api/internal/repository"
)

const minPasswordLength = 6

type UserService struct {
	userRepo UserStore
	logger   *zap.Logger
}

func NewUserService(userRepo UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register creates a patient account. Only the bcrypt hash of the
// password is ever stored.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, invalid("name", "a name is required")
	}
	if email == "" {
		return nil, invalid("email", "an email is required")
	}
	if len(password) < minPasswordLength {
		return nil, invalid("password", "the password must have at least 6 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("email", email),
	)

	return user, nil
}

// Authenticate checks the credentials. Unknown email and wrong password
// produce the same error shape.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
