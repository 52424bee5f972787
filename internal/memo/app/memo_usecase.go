package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gomemo/internal/memo/domain/entities"
	"gomemo/internal/memo/domain/services"
	"gomemo/internal/memo/ports/api"
	"gomemo/internal/memo/ports/cache"
	"gomemo/internal/memo/ports/repositories"
	"gomemo/internal/memo/validation"
	"gomemo/pkg/logger"
	"gomemo/pkg/metrics"
)

const (
	methodAddMemo    = "AddMemo"
	methodDeleteMemo = "DeleteMemo"

	operationAdd    = "add"
	operationDelete = "delete"

	msgAddingMemo       = "adding memo"
	msgDeletingMemo     = "deleting memo"
	msgInvalidMemoInput = "memo input rejected"
	msgUnknownOwner     = "memo owner not found"
	msgMemoAdded        = "memo added successfully"
	msgMemoDeleted      = "memo deleted successfully"
	msgMemoNotFound     = "memo not found"

	msgErrFindingOwner   = "error finding memo owner"
	msgErrAppendingMemo  = "failed to append memo"
	msgErrDeletingMemo   = "failed to delete memo"
	msgErrReloadingMemos = "failed to reload memos"

	errCtxNotAuthorized  = "resolving memo owner"
	errCtxAppendingMemo  = "appending memo"
	errCtxDeletingMemo   = "deleting memo"
	errCtxReloadingMemos = "reloading memos"
)

// MemoUseCaseImpl реализует интерфейс MemoUseCase.
type MemoUseCaseImpl struct {
	userRepo repositories.UserRepository
	memoRepo repositories.MemoRepository
	memos    memoList
}

// NewMemoUseCase создает новый экземпляр сервиса заметок.
func NewMemoUseCase(
	userRepo repositories.UserRepository,
	memoRepo repositories.MemoRepository,
	memoCache cache.MemoCache,
) api.MemoUseCase {
	return &MemoUseCaseImpl{
		userRepo: userRepo,
		memoRepo: memoRepo,
		memos:    memoList{repo: memoRepo, cache: memoCache},
	}
}

// AddMemo добавляет заметку в конец списка пользователя и возвращает обновленный список.
func (m *MemoUseCaseImpl) AddMemo(ctx context.Context, userID, content string) ([]entities.Memo, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAddMemo), zap.String("userID", userID))
	log.Debug(ctx, msgAddingMemo)

	memos, err := m.addMemo(ctx, log, userID, content)
	metrics.IncrementMemoOperation(operationAdd, operationStatus(err))
	return memos, err
}

func (m *MemoUseCaseImpl) addMemo(ctx context.Context, log *logger.Logger, userID, content string) ([]entities.Memo, error) {
	if err := validation.AddMemo(validation.AddMemoInput{Content: content}); err != nil {
		log.Debug(ctx, msgInvalidMemoInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	if err := m.ensureOwner(ctx, log, userID); err != nil {
		return nil, err
	}

	created, err := m.memoRepo.Append(ctx, userID, entities.NewMemo(content))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgUnknownOwner)
			return nil, fmt.Errorf("%s: %w", errCtxNotAuthorized, services.ErrNotAuthorized)
		}
		log.Error(ctx, msgErrAppendingMemo, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxAppendingMemo, err)
	}

	m.memos.invalidate(ctx, userID)
	log.Info(ctx, msgMemoAdded, zap.String("memoID", created.ID))

	memos, err := m.memos.fresh(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrReloadingMemos, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxReloadingMemos, err)
	}

	return memos, nil
}

// DeleteMemo удаляет заметку пользователя и возвращает обновленный список.
func (m *MemoUseCaseImpl) DeleteMemo(ctx context.Context, userID, memoID string) ([]entities.Memo, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodDeleteMemo),
		zap.String("userID", userID),
		zap.String("memoID", memoID),
	)
	log.Debug(ctx, msgDeletingMemo)

	memos, err := m.deleteMemo(ctx, log, userID, memoID)
	metrics.IncrementMemoOperation(operationDelete, operationStatus(err))
	return memos, err
}

func (m *MemoUseCaseImpl) deleteMemo(ctx context.Context, log *logger.Logger, userID, memoID string) ([]entities.Memo, error) {
	if err := validation.DeleteMemo(validation.DeleteMemoInput{MemoID: memoID}); err != nil {
		log.Debug(ctx, msgInvalidMemoInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	if err := m.ensureOwner(ctx, log, userID); err != nil {
		return nil, err
	}

	if err := m.memoRepo.Delete(ctx, userID, memoID); err != nil {
		if errors.Is(err, entities.ErrMemoNotFound) {
			log.Debug(ctx, msgMemoNotFound)
			return nil, fmt.Errorf("%s: %w", errCtxDeletingMemo, entities.ErrMemoNotFound)
		}
		log.Error(ctx, msgErrDeletingMemo, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxDeletingMemo, err)
	}

	m.memos.invalidate(ctx, userID)
	log.Info(ctx, msgMemoDeleted)

	memos, err := m.memos.fresh(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrReloadingMemos, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxReloadingMemos, err)
	}

	return memos, nil
}

// ensureOwner проверяет, что пользователь из токена все еще существует.
func (m *MemoUseCaseImpl) ensureOwner(ctx context.Context, log *logger.Logger, userID string) error {
	if userID == "" {
		log.Debug(ctx, msgUnknownOwner)
		return fmt.Errorf("%s: %w", errCtxNotAuthorized, services.ErrNotAuthorized)
	}

	if _, err := m.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgUnknownOwner)
			return fmt.Errorf("%s: %w", errCtxNotAuthorized, services.ErrNotAuthorized)
		}
		log.Error(ctx, msgErrFindingOwner, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	return nil
}
