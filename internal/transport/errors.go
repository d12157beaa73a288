package transport

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrRequest     = errors.New("transport request failed")
	ErrBadEnvelope = errors.New("response is not an api envelope")
)

// Ответ с кодом вне 2xx
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	if len(e.Body) > 0 {
		body := e.Body
		if len(body) > 256 {
			body = body[:256]
		}
		return fmt.Sprintf("%v: status %d: %s", ErrRequest, e.StatusCode, body)
	}
	return fmt.Sprintf("%v: status %d", ErrRequest, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrRequest
}

func (e *StatusError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Статус ответа из ошибки транспорта, 0 если это не StatusError
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
