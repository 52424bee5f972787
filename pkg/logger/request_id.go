package logger

import (
	"context"

	"github.com/google/uuid"
)

// MaxRequestIDLength - максимальная длина идентификатора запроса, принимаемого от клиента.
const MaxRequestIDLength = 128

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NewRequestIDContext кладет идентификатор запроса в контекст, генерируя его при пустом значении.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// GenerateRequestID генерирует новый идентификатор запроса.
func GenerateRequestID() string {
	return uuid.New().String()
}

// AcceptRequestID возвращает идентификатор клиента, если он короче MaxRequestIDLength
// и состоит из букв, цифр и символов "-_.:". Иначе генерирует новый.
func AcceptRequestID(candidate string) string {
	if candidate == "" || len(candidate) > MaxRequestIDLength {
		return GenerateRequestID()
	}

	for i := 0; i < len(candidate); i++ {
		if !requestIDChar(candidate[i]) {
			return GenerateRequestID()
		}
	}

	return candidate
}

func requestIDChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-', b == '_', b == '.', b == ':':
		return true
	default:
		return false
	}
}
