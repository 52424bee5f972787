// Package api описывает входные порты сервиса заметок.
package api

import (
	"context"

	"gomemo/internal/memo/domain/services"
)

// AccountUseCase определяет операции регистрации и входа.
type AccountUseCase interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*services.Registration, error)

	Login(ctx context.Context, email, password string) (*services.Session, error)
}
