package dto

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/tidwall/gjson"

	"gomemo/internal/memo/validation"
)

var (
	// ErrInvalidBody - тело запроса не является корректным JSON.
	ErrInvalidBody = errors.New("invalid request body")

	errNotObject = errors.New("request body is not a JSON object")
)

// Body - разобранный JSON-объект тела запроса.
// Ключи хранятся в порядке первого появления, при повторе ключа действует последнее значение.
type Body struct {
	keys   []string
	values map[string]gjson.Result
}

// Decode разбирает тело запроса. Пустое тело равно пустому объекту,
// чтобы клиент получил сообщение валидации об отсутствующих полях.
func Decode(c fiber.Ctx) (*Body, error) {
	return ParseBody(c.Body())
}

// ParseBody разбирает JSON-объект. Любое другое значение дает ErrInvalidBody.
func ParseBody(data []byte) (*Body, error) {
	body := &Body{keys: []string{}, values: make(map[string]gjson.Result)}

	if len(bytes.TrimSpace(data)) == 0 {
		return body, nil
	}

	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidBody
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, errors.Join(ErrInvalidBody, errNotObject)
	}

	parsed.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if _, seen := body.values[name]; !seen {
			body.keys = append(body.keys, name)
		}
		body.values[name] = value
		return true
	})

	return body, nil
}

// String возвращает строковое значение ключа. Отсутствующий ключ и значение другого типа дают "".
func (b *Body) String(key string) string {
	value, ok := b.values[key]
	if !ok || value.Type != gjson.String {
		return ""
	}
	return value.Str
}

// Shape описывает ключи тела для проверки схемы.
func (b *Body) Shape() validation.Shape {
	shape := validation.Shape{
		Keys:      append([]string{}, b.keys...),
		NonString: make(map[string]bool),
	}
	for key, value := range b.values {
		if value.Type != gjson.String {
			shape.NonString[key] = true
		}
	}
	return shape
}
