// Package app содержит сценарии работы с аккаунтами и заметками.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"gomemo/internal/memo/domain/entities"
	"gomemo/internal/memo/domain/services"
	"gomemo/internal/memo/ports/api"
	"gomemo/internal/memo/ports/cache"
	"gomemo/internal/memo/ports/repositories"
	svc "gomemo/internal/memo/ports/services"
	"gomemo/internal/memo/validation"
	"gomemo/pkg/logger"
	"gomemo/pkg/metrics"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"

	operationRegister = "register"
	operationLogin    = "login"

	msgStartRegistration   = "starting user registration"
	msgInvalidRegistration = "registration input rejected"
	msgEmailExists         = "user with this email already exists"
	msgUserRegistered      = "user registered successfully"
	msgTokenGenerated      = "authentication token generated for new user"
	msgLoginAttempt        = "login attempt"
	msgInvalidLogin        = "login input rejected"
	msgLoginNonExistent    = "login attempt with non-existent email"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrGenerateToken     = "failed to generate token"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"
	msgErrLoadingMemos      = "failed to load memos on login"
	msgErrDummyHash         = "failed to prepare dummy password hash"

	// dummyPassword хешируется один раз и сравнивается с паролем при входе с неизвестным email.
	dummyPassword = "memo-dummy-password"

	errCtxValidating         = "validating input"
	errCtxCheckingUser       = "checking existing user"
	errCtxEmailRegistered    = "email already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxGeneratingToken    = "generating token"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxLoadingMemos       = "loading memos"
)

// AccountUseCaseImpl реализует интерфейс AccountUseCase.
type AccountUseCaseImpl struct {
	userRepo    repositories.UserRepository
	memos       memoList
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService

	dummyOnce sync.Once
	dummyHash string
}

// NewAccountUseCase создает новый экземпляр сервиса аккаунтов.
func NewAccountUseCase(
	userRepo repositories.UserRepository,
	memoRepo repositories.MemoRepository,
	memoCache cache.MemoCache,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AccountUseCase {
	return &AccountUseCaseImpl{
		userRepo:    userRepo,
		memos:       memoList{repo: memoRepo, cache: memoCache},
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает пользователя с пустым списком заметок и выпускает для него токен.
func (a *AccountUseCaseImpl) Register(ctx context.Context, firstName, lastName, email, password string) (*services.Registration, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	reg, err := a.register(ctx, log, firstName, lastName, email, password)
	metrics.IncrementAccountOperation(operationRegister, operationStatus(err))
	return reg, err
}

func (a *AccountUseCaseImpl) register(
	ctx context.Context,
	log *logger.Logger,
	firstName, lastName, email, password string,
) (*services.Registration, error) {
	input := validation.RegistrationInput{FirstName: firstName, LastName: lastName, Email: email, Password: password}
	if err := validation.Registration(input); err != nil {
		log.Debug(ctx, msgInvalidRegistration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	existingUser, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, services.ErrEmailAlreadyExists)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hashedPassword,
		Memos:        []entities.Memo{},
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			log.Debug(ctx, msgEmailExists)
			return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, services.ErrEmailAlreadyExists)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	token, err := a.tokenSvc.GenerateToken(ctx, createdUser.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err), zap.String("userID", createdUser.ID))
		return nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.String("userID", createdUser.ID))
	return &services.Registration{User: createdUser, Token: token}, nil
}

// Login проверяет учетные данные и возвращает новый токен и текущий список заметок.
// Неизвестный email и неверный пароль дают одну и ту же ошибку.
func (a *AccountUseCaseImpl) Login(ctx context.Context, email, password string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	session, err := a.login(ctx, log, email, password)
	metrics.IncrementAccountOperation(operationLogin, operationStatus(err))
	return session, err
}

func (a *AccountUseCaseImpl) login(ctx context.Context, log *logger.Logger, email, password string) (*services.Session, error) {
	if err := validation.Login(validation.LoginInput{Email: email, Password: password}); err != nil {
		log.Debug(ctx, msgInvalidLogin, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			a.verifyDummy(ctx, log, password)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	token, err := a.tokenSvc.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed, err)
	}

	memos, err := a.memos.load(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrLoadingMemos, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingMemos, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return &services.Session{Token: token, Email: user.Email, Memos: memos}, nil
}

// verifyDummy сравнивает пароль с хешем dummyPassword, чтобы вход с неизвестным email
// выполнял ту же работу, что и вход с неверным паролем.
func (a *AccountUseCaseImpl) verifyDummy(ctx context.Context, log *logger.Logger, password string) {
	a.dummyOnce.Do(func() {
		hash, err := a.passwordSvc.Hash(ctx, dummyPassword)
		if err != nil {
			log.Warn(ctx, msgErrDummyHash, zap.Error(err))
			return
		}
		a.dummyHash = hash
	})

	if a.dummyHash != "" {
		_, _ = a.passwordSvc.Verify(ctx, password, a.dummyHash)
	}
}

// operationStatus переводит результат операции в метку метрики.
func operationStatus(err error) string {
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case errors.Is(err, validation.ErrValidation),
		errors.Is(err, services.ErrEmailAlreadyExists),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNotAuthorized),
		errors.Is(err, entities.ErrMemoNotFound):
		return metrics.StatusRejected
	default:
		return metrics.StatusFailed
	}
}
