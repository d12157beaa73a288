package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"bounty/internal/api"
	"bounty/internal/storage"
	"bounty/internal/types"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Часть фасада апи, которая нужна хранилищу сессии
//
//go:generate mockgen -source=store.go -destination=mock_store.go -package=session
type AccountAPI interface {
	Login(ctx context.Context, params types.LoginParams) (*types.LoginResult, error)
	GetProfile(ctx context.Context) (*types.UserProfile, error)
}

// Локальное хранилище устройства
type Persister interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

/*
Store владеет текущей сессией. Правила:
  - все изменяющие операции идут по одной (opMu держится и на время запроса в сеть)
  - после каждого изменения сначала пишем в хранилище, потом зовем подписчиков
  - ошибка записи в хранилище логируется, операцию она не ломает
*/
type Store struct {
	opMu sync.Mutex

	mu   sync.RWMutex
	sess Session

	obsMu     sync.Mutex
	observers map[int]func(Session)
	nextObs   int

	api     AccountAPI
	persist Persister
	key     string
	now     func() time.Time

	Logger *zap.SugaredLogger
}

// NewStore поднимает сессию из хранилища. Битые или просроченные данные
// дают пустую сессию, ошибкой это не считается.
func NewStore(ctx context.Context, a AccountAPI, p Persister, l *zap.SugaredLogger, opts ...Option) *Store {
	s := &Store{
		observers: make(map[int]func(Session)),
		api:       a,
		persist:   p,
		key:       DefaultKey,
		now:       time.Now,
		Logger:    l,
	}
	for _, o := range opts {
		o(s)
	}

	s.hydrate(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context) {
	if s.persist == nil {
		return
	}

	data, err := s.persist.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.Logger.Debugf("no stored session under %q", s.key)
		} else {
			s.Logger.Warnf("%v. More details: %v", storage.ErrRead, err)
		}
		return
	}

	sess, err := decode(data, s.now())
	if err != nil {
		s.Logger.Warnf("stored session dropped. More details: %v", err)
		return
	}

	s.mu.Lock()
	s.sess = sess
	s.mu.Unlock()

	s.Logger.Infof("session restored: %s", sess.State())
}

// Login: при любой ошибке состояние не меняется
func (s *Store) Login(ctx context.Context, params types.LoginParams) (*types.UserProfile, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	res, err := s.api.Login(ctx, params)
	if err != nil {
		return nil, err
	}

	u := res.UserInfo.Clone()
	s.commit(ctx, Session{Token: res.Token, UserInfo: &u})

	out := u.Clone()
	return &out, nil
}

// Logout не падает никогда, сохраненная копия тоже очищается
func (s *Store) Logout(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.commit(ctx, Session{})
}

/*
RefreshProfile перечитывает профиль:
  - без сессии                      -> ErrNotAuthenticated, в сеть не ходим
  - 401 (в конверте или по http)    -> выходим и отдаем ошибку
  - другая ошибка                   -> состояние не трогаем
*/
func (s *Store) RefreshProfile(ctx context.Context) (*types.UserProfile, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.IsLoggedIn() {
		return nil, &api.Error{Op: "refreshProfile", Kind: api.ErrNotAuthenticated, Msg: "no active session"}
	}

	u, err := s.api.GetProfile(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			s.Logger.Infof("session rejected by server, logging out")
			s.commit(ctx, Session{})
		}
		return nil, err
	}

	fresh := u.Clone()
	s.commit(ctx, Session{Token: s.Token(), UserInfo: &fresh})

	out := fresh.Clone()
	return &out, nil
}

// CheckSession не возвращает ошибок: false если сессии нет или обновить ее не вышло
func (s *Store) CheckSession(ctx context.Context) bool {
	if !s.IsLoggedIn() {
		return false
	}

	if _, err := s.RefreshProfile(ctx); err != nil {
		s.Logger.Infof("session check failed. More details: %v", err)
		return false
	}
	return true
}

func (s *Store) UpdateBalance(ctx context.Context, balance decimal.Decimal) error {
	return s.mutate(ctx, "updateBalance", func(u *types.UserProfile) {
		u.CoinBalance = balance
	})
}

func (s *Store) UpdateFrozenBalance(ctx context.Context, frozen decimal.Decimal) error {
	return s.mutate(ctx, "updateFrozenBalance", func(u *types.UserProfile) {
		u.FrozenBalance = frozen
	})
}

func (s *Store) PatchProfile(ctx context.Context, p types.ProfilePatch) error {
	return s.mutate(ctx, "patchProfile", func(u *types.UserProfile) {
		*u = p.Apply(*u)
	})
}

// ReplaceProfile - замена профиля целиком результатом подтвержденного запроса
func (s *Store) ReplaceProfile(ctx context.Context, profile types.UserProfile) error {
	return s.mutate(ctx, "replaceProfile", func(u *types.UserProfile) {
		*u = profile.Clone()
	})
}

// Локальные изменения профиля, сервер их уже подтвердил. В сеть не ходим.
func (s *Store) mutate(ctx context.Context, op string, fn func(u *types.UserProfile)) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	cur := s.Snapshot()
	if cur.State() != Authenticated {
		return &api.Error{Op: op, Kind: api.ErrNotAuthenticated, Msg: "no active session"}
	}

	fn(cur.UserInfo)
	s.commit(ctx, cur)
	return nil
}

// commit - единственное место, где меняется сессия. Вызывать под opMu.
func (s *Store) commit(ctx context.Context, next Session) {
	next = next.normalize().clone()

	s.mu.Lock()
	s.sess = next
	s.mu.Unlock()

	s.save(ctx, next)
	s.notify(next)
}

func (s *Store) save(ctx context.Context, sess Session) {
	if s.persist == nil {
		return
	}

	data, err := encode(sess)
	if err != nil {
		s.Logger.Errorf("%v. More details: %v", ErrMalformed, err)
		return
	}
	if err = s.persist.Set(ctx, s.key, data); err != nil {
		s.Logger.Errorf("%v. More details: %v", storage.ErrWrite, err)
	}
}

func (s *Store) notify(sess Session) {
	s.obsMu.Lock()
	fns := make([]func(Session), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(sess.clone())
	}
}

// Subscribe: fn вызывается после каждого изменения сессии, уже после записи в хранилище.
// Из fn нельзя звать изменяющие операции хранилища.
func (s *Store) Subscribe(fn func(Session)) (unsubscribe func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

// Снимок текущей сессии, менять его можно
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.clone()
}

// Token нужен транспорту для заголовка Authorization
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.Token
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.State()
}

func (s *Store) IsLoggedIn() bool {
	return s.State() == Authenticated
}

func (s *Store) profile() *types.UserProfile {
	return s.Snapshot().UserInfo
}

func (s *Store) IsAdmin() bool {
	u := s.profile()
	return u != nil && u.IsAdmin()
}

func (s *Store) IsSuperAdmin() bool {
	u := s.profile()
	return u != nil && u.RoleType == types.RoleSuperAdmin
}

func (s *Store) IsFrozen() bool {
	u := s.profile()
	return u != nil && u.IsFrozen()
}

func (s *Store) CoinBalance() decimal.Decimal {
	if u := s.profile(); u != nil {
		return u.CoinBalance
	}
	return decimal.Zero
}

func (s *Store) FrozenBalance() decimal.Decimal {
	if u := s.profile(); u != nil {
		return u.FrozenBalance
	}
	return decimal.Zero
}
