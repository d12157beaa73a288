package api

import (
	"errors"
	"fmt"
	"net/http"

	"bounty/internal/transport"
)

var (
	ErrAuth                = errors.New("authentication failed")
	ErrValidation          = errors.New("validation failed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrUpload              = errors.New("upload failed")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrRejected            = errors.New("request rejected")

	// Сетевые ошибки и ошибки http отдаем наверх как есть
	ErrTransport = transport.ErrRequest
)

// Ошибка операции апи: Kind - одна из ошибок выше, Code/Msg из конверта ответа.
// Code == 0 значит, что запрос до сети не дошел.
type Error struct {
	Op   string
	Kind error
	Code int
	Msg  string
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: %v: %s (code %d)", e.Op, e.Kind, e.Msg, e.Code)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// IsUnauthorized: токен не принят - либо код 401 в конверте, либо http 401
func IsUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrUnauthorized) || transport.StatusCode(err) == http.StatusUnauthorized
}
