package mock

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"bounty/internal/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultVerifyCode = "123456"
	DefaultUploadType = "image/jpeg"

	picsumURL = "https://picsum.photos/seed/%s/400/400"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrWrongCode         = errors.New("wrong verification code")
	ErrInvalidLoginCode  = errors.New("invalid login code")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidAmount     = errors.New("invalid amount")
)

type Config struct {
	Secret     string
	VerifyCode string
	LedgerSize int
}

/*
Backend - имитация сервера в памяти. Фикстуры живут, пока жив процесс:
пополнение и вывод меняют баланс и дописывают журнал.
Все методы возвращают конверт как настоящий бэкенд, ошибки домена - кодом в конверте.
*/
type Backend struct {
	mu      sync.Mutex
	users   map[string]types.UserProfile
	ledgers map[string][]types.CoinLogEntry

	codeHash []byte
	tokens   *Tokens
	now      func() time.Time

	Logger *zap.SugaredLogger
}

func NewBackend(cfg Config, l *zap.SugaredLogger) (*Backend, error) {
	if cfg.VerifyCode == "" {
		cfg.VerifyCode = DefaultVerifyCode
	}
	if cfg.LedgerSize <= 0 {
		cfg.LedgerSize = DefaultLedgerSize
	}

	// Код храним только хешем, как пароль
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.VerifyCode), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash verify code: %w", err)
	}

	return &Backend{
		users: fixtureUsers(),
		ledgers: map[string][]types.CoinLogEntry{
			UserCertified: fixtureLedger(cfg.LedgerSize),
		},
		codeHash: hash,
		tokens:   NewTokens(cfg.Secret, l),
		now:      time.Now,
		Logger:   l,
	}, nil
}

// Authenticate проверяет токен и что пользователь из него существует
func (b *Backend) Authenticate(token string) (string, error) {
	userID, err := b.tokens.Verify(token)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.users[userID]; !ok {
		b.Logger.Infof("%v. More details: %s", ErrUserNotFound, userID)
		return "", ErrInvalidToken
	}
	return userID, nil
}

// Пользователь выбирается по подстроке в коде логина
func pickUser(code string) string {
	switch {
	case strings.Contains(code, CodeUncertified):
		return UserUncertified
	case strings.Contains(code, CodeSuper):
		return UserSuperAdmin
	case strings.Contains(code, CodeAdmin):
		return UserAdmin
	default:
		return UserCertified
	}
}

func (b *Backend) Login(p types.LoginParams) *types.Envelope[types.LoginResult] {
	if p.Code == "" || strings.Contains(p.Code, CodeInvalid) {
		return types.Fail[types.LoginResult](types.CodeBadRequest, ErrInvalidLoginCode.Error())
	}

	userID := pickUser(p.Code)
	token, err := b.tokens.Issue(userID)
	if err != nil {
		return types.Fail[types.LoginResult](types.CodeServerError, err.Error())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.Logger.Infof("mock login: %s", userID)
	return types.OK(types.LoginResult{Token: token, UserInfo: b.users[userID].Clone()}, "login success")
}

func (b *Backend) checkCode(code string) bool {
	return bcrypt.CompareHashAndPassword(b.codeHash, []byte(code)) == nil
}

func (b *Backend) Bind(userID string, p types.BindParams) *types.Envelope[types.UserProfile] {
	if !b.checkCode(p.VerifyCode) {
		return types.Fail[types.UserProfile](types.CodeBadRequest, ErrWrongCode.Error())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[userID]
	if !ok {
		return types.Fail[types.UserProfile](types.CodeUnauthorized, ErrUserNotFound.Error())
	}

	certified := true
	u = types.ProfilePatch{
		StudentID:   &p.StudentID,
		Email:       &p.Email,
		IsCertified: &certified,
	}.Apply(u)
	b.users[userID] = u

	return types.OK(u.Clone(), "bind success")
}

func (b *Backend) SendCode(p types.SendCodeParams) *types.Envelope[types.Empty] {
	if strings.Contains(p.Email, "error") {
		return types.Fail[types.Empty](types.CodeBadRequest, ErrInvalidEmail.Error())
	}

	b.Logger.Infof("mock verification code sent to %s (%s)", p.Email, p.Type)
	return types.OK(types.Empty{}, "code sent")
}

func (b *Backend) GetProfile(userID string) *types.Envelope[types.UserProfile] {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[userID]
	if !ok {
		return types.Fail[types.UserProfile](types.CodeUnauthorized, ErrUserNotFound.Error())
	}
	return types.OK(u.Clone(), "ok")
}

func (b *Backend) UpdateProfile(userID string, p types.UpdateProfileParams) *types.Envelope[types.UserProfile] {
	if p.Email != nil && (p.VerifyCode == nil || !b.checkCode(*p.VerifyCode)) {
		return types.Fail[types.UserProfile](types.CodeBadRequest, ErrWrongCode.Error())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[userID]
	if !ok {
		return types.Fail[types.UserProfile](types.CodeUnauthorized, ErrUserNotFound.Error())
	}

	u = p.Patch().Apply(u)
	b.users[userID] = u

	return types.OK(u.Clone(), "update success")
}

func (b *Backend) Recharge(userID string, p types.RechargeParams) *types.Envelope[types.BalanceResult] {
	if !types.IsRechargeAmount(p.Amount) {
		return types.Fail[types.BalanceResult](types.CodeBadRequest, ErrInvalidAmount.Error())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[userID]
	if !ok {
		return types.Fail[types.BalanceResult](types.CodeUnauthorized, ErrUserNotFound.Error())
	}

	amount := decimal.NewFromInt(int64(p.Amount))
	u.CoinBalance = u.CoinBalance.Add(amount)
	b.users[userID] = u
	b.record(userID, types.LogRecharge, amount)

	return types.OK(types.BalanceResult{CoinBalance: u.CoinBalance, FrozenBalance: u.FrozenBalance}, "recharge success")
}

// Withdraw: вывод уходит в замороженные до подтверждения
func (b *Backend) Withdraw(userID string, p types.WithdrawParams) *types.Envelope[types.BalanceResult] {
	if !p.CoinAmount.IsPositive() {
		return types.Fail[types.BalanceResult](types.CodeBadRequest, ErrInvalidAmount.Error())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[userID]
	if !ok {
		return types.Fail[types.BalanceResult](types.CodeUnauthorized, ErrUserNotFound.Error())
	}
	if p.CoinAmount.GreaterThan(u.CoinBalance) {
		return types.Fail[types.BalanceResult](types.CodeBadRequest, ErrInsufficientFunds.Error())
	}

	u.CoinBalance = u.CoinBalance.Sub(p.CoinAmount)
	u.FrozenBalance = u.FrozenBalance.Add(p.CoinAmount)
	b.users[userID] = u
	b.record(userID, types.LogWithdraw, p.CoinAmount.Neg())
	b.record(userID, types.LogFreeze, p.CoinAmount)

	return types.OK(types.BalanceResult{CoinBalance: u.CoinBalance, FrozenBalance: u.FrozenBalance}, "withdraw submitted")
}

func (b *Backend) GetLogs(userID string, p types.CoinLogsParams) *types.Envelope[types.PagedResult[types.CoinLogEntry]] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.users[userID]; !ok {
		return types.Fail[types.PagedResult[types.CoinLogEntry]](types.CodeUnauthorized, ErrUserNotFound.Error())
	}

	logs := b.ledgers[userID]
	if p.Type != "" {
		filtered := make([]types.CoinLogEntry, 0, len(logs))
		for _, l := range logs {
			if l.Type == p.Type {
				filtered = append(filtered, l)
			}
		}
		logs = filtered
	}

	return types.OK(types.Paginate(logs, p.Page, p.PageSize), "ok")
}

// UploadImage ничего не хранит, только выдает картинку-заглушку.
// size <= 0 - размер неизвестен, берем случайный как у настоящих аватарок.
func (b *Backend) UploadImage(size int64, contentType string) *types.Envelope[types.UploadResult] {
	if size <= 0 {
		size = 100_000 + rand.Int63n(500_000)
	}
	if contentType == "" {
		contentType = DefaultUploadType
	}

	return types.OK(types.UploadResult{
		URL:  fmt.Sprintf(picsumURL, uuid.New().String()[:8]),
		Size: size,
		Type: contentType,
	}, "upload success")
}

// Новые записи журнала идут в начало, журнал всегда от новых к старым.
// Вызывать под b.mu.
func (b *Backend) record(userID string, typ types.CoinLogType, amount decimal.Decimal) {
	entry := types.CoinLogEntry{
		LogID:      uuid.New().String(),
		Type:       typ,
		Amount:     amount,
		CreateTime: b.now(),
	}
	b.ledgers[userID] = append([]types.CoinLogEntry{entry}, b.ledgers[userID]...)
}
