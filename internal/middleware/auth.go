package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bounty/internal/types"

	"go.uber.org/zap"
)

var (
	ErrHeaderNotSet = errors.New("authorization header not set")
	ErrInvalidToken = errors.New("invalid token in header")
)

type ctxKey int

const userIDKey ctxKey = iota

// Authenticator проверяет токен и отдает id пользователя. *mock.Backend им удовлетворяет.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// BearerToken достает токен из заголовка Authorization
func BearerToken(r *http.Request) (string, error) {
	t := r.Header.Get("Authorization")
	if t == "" {
		return "", ErrHeaderNotSet
	}

	t = strings.TrimSpace(strings.TrimPrefix(t, "Bearer "))
	if t == "" {
		return "", ErrInvalidToken
	}
	return t, nil
}

// Auth пропускает дальше только запросы с валидным токеном, иначе http 401 и 401 в конверте
func Auth(a Authenticator, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				logger.Infof("%v. More details: %s %s", err, r.Method, r.URL.Path)
				unauthorized(w, err, logger)
				return
			}

			userID, err := a.Authenticate(token)
			if err != nil {
				logger.Infof("%v. More details: %v", ErrInvalidToken, err)
				unauthorized(w, ErrInvalidToken, logger)
				return
			}

			// Добавляем пользователя в контекст и передаем дальше
			ctx := ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, err error, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if errEncode := json.NewEncoder(w).Encode(types.Fail[types.Empty](types.CodeUnauthorized, err.Error())); errEncode != nil {
		logger.Error(errEncode)
	}
}
