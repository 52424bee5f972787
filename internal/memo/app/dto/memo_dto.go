package dto

import (
	"time"

	"gomemo/internal/memo/domain/entities"
	"gomemo/internal/memo/validation"
)

// AddMemoRequest представляет запрос на добавление заметки.
type AddMemoRequest struct {
	Content string

	shape validation.Shape
}

// NewAddMemoRequest собирает запрос на добавление заметки из тела.
func NewAddMemoRequest(body *Body) AddMemoRequest {
	return AddMemoRequest{Content: body.String("content"), shape: body.Shape()}
}

// Input возвращает данные для проверки схемы добавления.
func (r AddMemoRequest) Input() validation.AddMemoInput {
	return validation.AddMemoInput{Content: r.Content, Shape: r.shape}
}

// DeleteMemoRequest представляет запрос на удаление заметки.
type DeleteMemoRequest struct {
	MemoID string

	shape validation.Shape
}

// NewDeleteMemoRequest собирает запрос на удаление заметки из тела.
func NewDeleteMemoRequest(body *Body) DeleteMemoRequest {
	return DeleteMemoRequest{MemoID: body.String("memoId"), shape: body.Shape()}
}

// Input возвращает данные для проверки схемы удаления.
func (r DeleteMemoRequest) Input() validation.DeleteMemoInput {
	return validation.DeleteMemoInput{MemoID: r.MemoID, Shape: r.shape}
}

// MemoResponse - заметка в формате ответа.
type MemoResponse struct {
	ID         string    `json:"_id"`
	TimeStamps time.Time `json:"timeStamps"`
	Content    string    `json:"content"`
}

// NewMemoList преобразует заметки в ответ. Пустой список сериализуется как [].
func NewMemoList(memos []entities.Memo) []MemoResponse {
	out := make([]MemoResponse, 0, len(memos))
	for _, m := range memos {
		out = append(out, MemoResponse{ID: m.ID, TimeStamps: m.CreatedAt, Content: m.Content})
	}
	return out
}
