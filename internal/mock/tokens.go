package mock

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	tokenTTL = 14 * 24 * time.Hour

	FieldUser      = "user"
	FieldUserID    = "id"
	FieldSessionID = "session_id"
)

var (
	ErrUnexpectedMethod = errors.New("unexpected signing method")
	ErrInvalidToken     = errors.New("invalid token")
	ErrSigningToken     = errors.New("error signing token")
)

// Tokens выдает и проверяет jwt моков, подпись HS256 общим секретом
type Tokens struct {
	secret []byte
	now    func() time.Time
	Logger *zap.SugaredLogger
}

func NewTokens(secret string, l *zap.SugaredLogger) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		now:    time.Now,
		Logger: l,
	}
}

func (t *Tokens) Issue(userID string) (string, error) {
	start := t.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		FieldUser: map[string]interface{}{
			FieldUserID: userID,
		},
		"iat":          start.Unix(),
		"exp":          start.Add(tokenTTL).Unix(),
		FieldSessionID: uuid.New().String(),
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		t.Logger.Errorf("%v. More details: %v", ErrSigningToken, err)
		return "", ErrSigningToken
	}

	return signed, nil
}

// Verify возвращает id пользователя из токена
func (t *Tokens) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedMethod
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		t.Logger.Infof("%v. More details: %v", ErrInvalidToken, err)
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims[FieldSessionID] == nil {
		return "", ErrInvalidToken
	}
	user, ok := claims[FieldUser].(map[string]interface{})
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok := user[FieldUserID].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}
