package password

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost стоимость хеширования по умолчанию
	DefaultCost = bcrypt.DefaultCost
	// DefaultMinLength минимальная длина пароля по умолчанию
	DefaultMinLength = 6
	// maxBytes bcrypt учитывает только первые 72 байта
	maxBytes = 72
)

// Ошибки проверки пароля
var (
	ErrEmpty    = errors.New("password cannot be empty")
	ErrTooShort = errors.New("password is too short")
	ErrTooLong  = errors.New("password is too long")
	ErrMismatch = errors.New("password does not match")
)

// Hasher интерфейс для хеширования паролей
type Hasher interface {
	Hash(password string) (string, error)
	Check(hash, password string) error
}

// BCryptHasher реализация хеширования через bcrypt
type BCryptHasher struct {
	cost      int
	minLength int
}

// NewBCryptHasher создает hasher. Некорректная стоимость заменяется на DefaultCost,
// minLength <= 0 на DefaultMinLength.
func NewBCryptHasher(cost, minLength int) *BCryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	return &BCryptHasher{
		cost:      cost,
		minLength: minLength,
	}
}

// Validate проверяет пароль на соответствие политике
func (h *BCryptHasher) Validate(password string) error {
	switch {
	case password == "":
		return ErrEmpty
	case utf8.RuneCountInString(password) < h.minLength:
		return fmt.Errorf("%w: at least %d characters required", ErrTooShort, h.minLength)
	case len(password) > maxBytes:
		return fmt.Errorf("%w: at most %d bytes allowed", ErrTooLong, maxBytes)
	}
	return nil
}

// Hash проверяет и хеширует пароль
func (h *BCryptHasher) Hash(password string) (string, error) {
	if err := h.Validate(password); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Check проверяет соответствие пароля хешу
func (h *BCryptHasher) Check(hash, password string) error {
	if hash == "" || password == "" {
		return ErrMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to check password: %w", err)
	}
	return nil
}

// IsPolicyViolation возвращает true, если пароль отклонен политикой, а не из-за сбоя
func IsPolicyViolation(err error) bool {
	return errors.Is(err, ErrEmpty) || errors.Is(err, ErrTooShort) || errors.Is(err, ErrTooLong)
}
