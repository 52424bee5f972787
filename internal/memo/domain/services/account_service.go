// Package services содержит доменные ошибки и результаты операций с аккаунтами и заметками.
package services

import (
	"errors"

	"gomemo/internal/memo/domain/entities"
)

// Ошибки домена аккаунтов.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
	ErrNotAuthorized         = errors.New("not authorized")
)

// Registration - результат регистрации: созданный пользователь и его токен.
type Registration struct {
	User  *entities.User
	Token string
}

// Session - результат входа.
type Session struct {
	Token string
	Email string
	Memos []entities.Memo
}
