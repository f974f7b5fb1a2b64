package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/avc/points-ledger/internal/utils/jwt"
	"github.com/avc/points-ledger/internal/utils/password"
)

// AuthService реализует domain.AuthService
type AuthService struct {
	userRepo       domain.UserRepository
	passwordHasher password.Hasher
	jwtManager     *jwt.Manager
	adminLogins    map[string]struct{}
}

// NewAuthService создает новый AuthService.
// Пользователи из adminLogins получают права администратора в токене.
func NewAuthService(
	userRepo domain.UserRepository,
	passwordHasher password.Hasher,
	jwtManager *jwt.Manager,
	adminLogins ...string,
) *AuthService {
	admins := make(map[string]struct{}, len(adminLogins))
	for _, login := range adminLogins {
		admins[login] = struct{}{}
	}
	return &AuthService{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		jwtManager:     jwtManager,
		adminLogins:    admins,
	}
}

// Register регистрирует нового пользователя
func (s *AuthService) Register(ctx context.Context, login, userPassword string) (string, error) {
	if login == "" || userPassword == "" {
		return "", domain.ErrInvalidInput
	}

	hash, err := s.passwordHasher.Hash(userPassword)
	if err != nil {
		if password.IsPolicyViolation(err) {
			return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return "", fmt.Errorf("auth service: failed to hash password for user %q: %w", login, err)
	}

	user, err := s.userRepo.CreateUser(ctx, login, hash)
	if err != nil {
		// Не оборачиваем sentinel error
		if errors.Is(err, domain.ErrUserExists) {
			return "", err
		}
		return "", fmt.Errorf("auth service: failed to register user %q: %w", login, err)
	}

	return s.issueToken(user)
}

// Login аутентифицирует пользователя
func (s *AuthService) Login(ctx context.Context, login, userPassword string) (string, error) {
	if login == "" || userPassword == "" {
		return "", domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("auth service: failed to get user %q: %w", login, err)
	}

	if err := s.passwordHasher.Check(user.PasswordHash, userPassword); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	_, listed := s.adminLogins[user.Login]

	token, err := s.jwtManager.Generate(user.ID, user.IsAdmin || listed)
	if err != nil {
		return "", fmt.Errorf("auth service: failed to generate token for user %d: %w", user.ID, err)
	}
	return token, nil
}
