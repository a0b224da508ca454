package service

import (
	"context"
	"errors"
	"fmt"

	"netsecurepro/internal/common"
	"netsecurepro/internal/common/security"
	"netsecurepro/internal/domain/model"
	"netsecurepro/internal/domain/repository"
)

// Flow-level failures surfaced to the user as flash messages.
var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUserExists       = errors.New("username or email already taken")
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterRequest struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type LoginRequest struct {
	Username string
	Password string
}

// Register creates a new account and returns it. There is no auto-login:
// the caller sends the user to the login page afterwards.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	// Add more validation (email format, password strength etc.)

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two racing registrations can both pass the existence check; the
		// storage uniqueness constraint decides.
		if errors.Is(err, common.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	security.LogSecurityEvent(ctx, "registration", "new user registered: "+user.Username, user.ID, "")
	return user, nil
}

// Login authenticates by exact username and password. Every failure mode
// collapses into common.ErrUnauthorized so the response never reveals
// whether the username exists.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, ipAddress string) (*model.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.ErrUnauthorized
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			security.LogSecurityEvent(ctx, "failed_login", "login failed for username: "+req.Username, 0, ipAddress)
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.PasswordHash) {
		security.LogSecurityEvent(ctx, "failed_login", "login failed for username: "+req.Username, user.ID, ipAddress)
		return nil, common.ErrUnauthorized
	}

	security.LogSecurityEvent(ctx, "login", "login succeeded for username: "+req.Username, user.ID, ipAddress)
	return user, nil
}

// UserByID resolves a stored session identifier back to a user record.
// common.ErrNotFound means the caller should be treated as anonymous.
func (s *AuthService) UserByID(ctx context.Context, id uint) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}
