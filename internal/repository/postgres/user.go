package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc/points-ledger/internal/domain"
	"github.com/jackc/pgx/v5"
)

// UserRepository реализует репозиторий пользователей.
type UserRepository struct {
	db DBTX
}

// NewUserRepository создает новый UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser создает нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, login, passwordHash string) (*domain.User, error) {
	user := &domain.User{}

	err := r.db.QueryRow(ctx,
		`INSERT INTO users (login, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, login, password_hash, is_admin, created_at`,
		login, passwordHash,
	).Scan(&user.ID, &user.Login, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("repository: failed to create user %q: %w", login, classify(err))
	}

	return user, nil
}

// GetUserByLogin получает пользователя по логину
func (r *UserRepository) GetUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	user, err := r.getUser(ctx, `login = $1`, login)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get user by login %q: %w", login, err)
	}
	return user, nil
}

// GetUserByID получает пользователя по ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := r.getUser(ctx, `id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get user by id %d: %w", id, err)
	}
	return user, nil
}

func (r *UserRepository) getUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	user := &domain.User{}

	err := r.db.QueryRow(ctx,
		`SELECT id, login, password_hash, is_admin, created_at
		 FROM users
		 WHERE `+where,
		arg,
	).Scan(&user.ID, &user.Login, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classify(err)
	}

	return user, nil
}
