package services

import "context"

// TokenService определяет интерфейс для операций с токенами JWT.
type TokenService interface {
	GenerateToken(ctx context.Context, userID string) (string, error)

	// ValidateToken возвращает ID пользователя из валидного токена.
	ValidateToken(ctx context.Context, token string) (string, error)
}
