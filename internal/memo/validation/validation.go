// Package validation проверяет входные данные операций с аккаунтами и заметками.
// Функции пакета не имеют побочных эффектов и возвращают первое нарушение схемы:
// поля проверяются в порядке объявления, затем ищутся лишние ключи.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error - нарушение схемы. Message отдается клиенту без изменений.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ErrValidation позволяет проверять ошибки валидации через errors.Is.
var ErrValidation = errors.New("validation failed")

// Is сопоставляет любую ошибку валидации с ErrValidation.
func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

// Shape описывает JSON-объект, из которого получены входные данные.
// Keys перечисляет ключи в порядке появления, NonString отмечает ключи со значением
// не строкового типа. Нулевой Shape означает, что данные получены не из тела запроса,
// и тогда пустая строка считается отсутствующим полем.
type Shape struct {
	Keys      []string
	NonString map[string]bool
}

func (s Shape) parsed() bool {
	return s.Keys != nil
}

func (s Shape) has(key string) bool {
	return slices.Contains(s.Keys, key)
}

// RegistrationInput - схема регистрации.
type RegistrationInput struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,min=5,max=255,email"`
	Password  string `json:"password" validate:"required,min=8,max=255"`

	Shape Shape `json:"-" validate:"-"`
}

// LoginInput - схема входа. Верхняя граница пароля отличается от регистрации.
type LoginInput struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=8,max=225"`

	Shape Shape `json:"-" validate:"-"`
}

// AddMemoInput - схема добавления заметки.
type AddMemoInput struct {
	Content string `json:"content" validate:"required,min=1,max=255"`

	Shape Shape `json:"-" validate:"-"`
}

// DeleteMemoInput - схема удаления заметки.
type DeleteMemoInput struct {
	MemoID string `json:"memoId" validate:"required,uuid"`

	Shape Shape `json:"-" validate:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Registration проверяет данные регистрации.
func Registration(in RegistrationInput) error {
	return check(in, in.Shape)
}

// Login проверяет учетные данные.
func Login(in LoginInput) error {
	return check(in, in.Shape)
}

// AddMemo проверяет текст новой заметки.
func AddMemo(in AddMemoInput) error {
	return check(in, in.Shape)
}

// DeleteMemo проверяет идентификатор удаляемой заметки.
func DeleteMemo(in DeleteMemoInput) error {
	return check(in, in.Shape)
}

func check(in any, shape Shape) error {
	failures, err := fieldErrors(in)
	if err != nil {
		return err
	}

	fields := schemaFields(in)
	for _, field := range fields {
		if shape.parsed() && shape.has(field) {
			if shape.NonString[field] {
				return &Error{Field: field, Message: fmt.Sprintf("%q must be a string", field)}
			}
			if fe, ok := failures[field]; ok && fe.Tag() == "required" {
				return &Error{Field: field, Message: fmt.Sprintf("%q is not allowed to be empty", field)}
			}
		}
		if fe, ok := failures[field]; ok {
			return &Error{Field: field, Message: message(fe)}
		}
	}

	if shape.parsed() {
		for _, key := range shape.Keys {
			if !slices.Contains(fields, key) {
				return &Error{Field: key, Message: fmt.Sprintf("%q is not allowed", key)}
			}
		}
	}

	return nil
}

// fieldErrors возвращает первое нарушение правил для каждого поля.
func fieldErrors(in any) (map[string]validator.FieldError, error) {
	err := validate.Struct(in)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validate input: %w", err)
	}

	failures := make(map[string]validator.FieldError, len(verrs))
	for _, fe := range verrs {
		if _, seen := failures[fe.Field()]; !seen {
			failures[fe.Field()] = fe
		}
	}
	return failures, nil
}

// schemaFields возвращает имена полей схемы в порядке объявления.
func schemaFields(in any) []string {
	t := reflect.TypeOf(in)
	fields := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		fields = append(fields, name)
	}
	return fields
}

func message(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "uuid":
		return fmt.Sprintf("%q must be a valid GUID", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
