package postgres

import (
	"gomemo/internal/memo/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	userRepo repositories.UserRepository
	memoRepo repositories.MemoRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo: NewUserRepository(pool),
		memoRepo: NewMemoRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// MemoRepository возвращает репозиторий заметок.
func (f *RepositoryFactory) MemoRepository() repositories.MemoRepository {
	return f.memoRepo
}
