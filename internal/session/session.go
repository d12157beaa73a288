package session

import (
	"encoding/json"
	"errors"
	"time"

	"bounty/internal/types"

	"github.com/golang-jwt/jwt"
)

const (
	DefaultKey = "user-store"
)

var (
	ErrMalformed = errors.New("malformed session payload")
	ErrExpired   = errors.New("session token expired")
)

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "Authenticated"
	}
	return "Anonymous"
}

// Session - то, что хранится на устройстве под одним ключом
type Session struct {
	Token    string             `json:"token"`
	UserInfo *types.UserProfile `json:"userInfo"`
}

func (s Session) State() State {
	if s.Token != "" && s.UserInfo != nil {
		return Authenticated
	}
	return Anonymous
}

// Полусобранная сессия (токен без профиля и наоборот) считается пустой
func (s Session) normalize() Session {
	if s.State() == Anonymous {
		return Session{}
	}
	return s
}

func (s Session) clone() Session {
	if s.UserInfo == nil {
		return Session{Token: s.Token}
	}
	u := s.UserInfo.Clone()
	return Session{Token: s.Token, UserInfo: &u}
}

func encode(s Session) ([]byte, error) {
	return json.Marshal(s)
}

/*
Разбор сохраненной сессии. Ошибка, если:
  - не json
  - токен без профиля или профиль без токена
  - отрицательный баланс или неизвестная роль
  - jwt с истекшим exp
*/
func decode(data []byte, now time.Time) (Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, errors.Join(ErrMalformed, err)
	}

	if s.Token == "" && s.UserInfo == nil {
		return Session{}, nil
	}
	if s.State() != Authenticated {
		return Session{}, ErrMalformed
	}

	u := s.UserInfo
	if u.UserID == "" || !u.RoleType.Valid() || u.CoinBalance.IsNegative() || u.FrozenBalance.IsNegative() {
		return Session{}, ErrMalformed
	}

	if tokenExpired(s.Token, now) {
		return Session{}, ErrExpired
	}

	return s, nil
}

// Подпись не проверяем, секрета у клиента нет. Токен не jwt - решит бэкенд.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), false)
}
