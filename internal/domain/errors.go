package domain

import "errors"

// Ошибки пользователей
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// Ошибки леджера
var (
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrDuplicateRequest       = errors.New("duplicate request")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidKind            = errors.New("invalid transaction kind")
	ErrStorageUnavailable     = errors.New("storage unavailable")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrInvariantViolation     = errors.New("summary invariant violation")
	ErrSummaryNotFound        = errors.New("summary not found")
)

// Ошибки каталога акций
var (
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrPromotionInactive = errors.New("promotion is not active")
)
