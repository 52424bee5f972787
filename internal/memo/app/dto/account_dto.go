// Package dto содержит объекты запросов и ответов HTTP API.
package dto

import "gomemo/internal/memo/validation"

// RegisterRequest представляет запрос на регистрацию.
type RegisterRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string

	shape validation.Shape
}

// NewRegisterRequest собирает запрос на регистрацию из тела.
func NewRegisterRequest(body *Body) RegisterRequest {
	return RegisterRequest{
		FirstName: body.String("firstName"),
		LastName:  body.String("lastName"),
		Email:     body.String("email"),
		Password:  body.String("password"),
		shape:     body.Shape(),
	}
}

// Input возвращает данные для проверки схемы регистрации.
func (r RegisterRequest) Input() validation.RegistrationInput {
	return validation.RegistrationInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Shape:     r.shape,
	}
}

// LoginRequest представляет запрос на вход.
type LoginRequest struct {
	Email    string
	Password string

	shape validation.Shape
}

// NewLoginRequest собирает запрос на вход из тела.
func NewLoginRequest(body *Body) LoginRequest {
	return LoginRequest{
		Email:    body.String("email"),
		Password: body.String("password"),
		shape:    body.Shape(),
	}
}

// Input возвращает данные для проверки схемы входа.
func (r LoginRequest) Input() validation.LoginInput {
	return validation.LoginInput{Email: r.Email, Password: r.Password, Shape: r.shape}
}

// LoginResponse представляет ответ на успешный вход.
type LoginResponse struct {
	Token string         `json:"token"`
	Email string         `json:"email"`
	Memos []MemoResponse `json:"memos"`
}
