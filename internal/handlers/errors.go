package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"bounty/internal/types"

	"go.uber.org/zap"
)

var (
	ErrBadBody   = errors.New("malformed request body")
	ErrBadQuery  = errors.New("malformed query")
	ErrNoFile    = errors.New("file part is missing")
	ErrNoSession = errors.New("no user in request context")
)

// Ошибка запроса: http статус и тот же код в конверте
func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	writeJSON(w, statusCode, types.Fail[types.Empty](statusCode, err.Error()), logger)
}

// Ответ бэкенда: ошибки домена идут с http 200 и кодом в конверте,
// только 401 дублируем в http статус
func SendEnvelope[T any](w http.ResponseWriter, env *types.Envelope[T], logger *zap.SugaredLogger) {
	status := http.StatusOK
	if env.Code == types.CodeUnauthorized {
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, env, logger)
}

func writeJSON(w http.ResponseWriter, statusCode int, v any, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(v); errEncode != nil {
		logger.Error(errEncode)
	}
}
