package entities

import (
	"errors"
	"time"
)

// ErrMemoNotFound возвращается, когда у пользователя нет заметки с указанным ID.
var ErrMemoNotFound = errors.New("memo not found")

// Memo - короткая текстовая заметка пользователя. После создания не изменяется.
type Memo struct {
	ID        string
	Content   string
	CreatedAt time.Time
}

// NewMemo создает заметку с текущим временем. ID назначает хранилище.
func NewMemo(content string) Memo {
	return Memo{
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}
