package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"assignportal/internal/auth"
	"assignportal/internal/cache"
	apperrors "assignportal/internal/errors"
	"assignportal/internal/model"
	"assignportal/internal/repository"
	"assignportal/internal/validation"
)

const bcryptCost = 10

const (
	adminListCacheKey = "admins"
	adminListCacheTTL = 5 * time.Minute
)

// AccountService handles registration, login, and account listing.
type AccountService interface {
	Register(ctx context.Context, username, password string, role model.Role) (*model.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	ListAdmins(ctx context.Context) ([]model.User, error)
}

type accountService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
}

// NewAccountService creates a new account service.
func NewAccountService(userRepo repository.UserRepository, jwtService *auth.JWTService, cache *cache.Client) AccountService {
	return &accountService{
		userRepo:   userRepo,
		jwtService: jwtService,
		cache:      cache,
	}
}

// Register validates credentials, hashes the password, and persists a new
// account with the given role. The unique index on username backstops the
// pre-insert duplicate check.
func (s *accountService) Register(ctx context.Context, username, password string, role model.Role) (*model.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if role == model.RoleAdmin {
		_ = s.cache.Delete(ctx, adminListCacheKey)
	}
	return user, nil
}

// Login verifies the password against the stored hash and issues a signed
// token carrying the account's id and role. An unknown username and a wrong
// password are indistinguishable to the caller.
func (s *accountService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// ListAdmins returns all admin accounts, serving from cache when possible.
func (s *accountService) ListAdmins(ctx context.Context) ([]model.User, error) {
	var cached []model.User
	if s.cache.GetJSON(ctx, adminListCacheKey, &cached) {
		return cached, nil
	}

	admins, err := s.userRepo.ListByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, adminListCacheKey, admins, adminListCacheTTL)
	return admins, nil
}
