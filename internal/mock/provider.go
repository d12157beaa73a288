package mock

import (
	"context"
	"fmt"
	"os"
	"time"

	"bounty/internal/api"
	"bounty/internal/transport"
	"bounty/internal/types"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// Задержки ответа моков, умножаются на scale
var delays = map[string]time.Duration{
	"login":         800 * time.Millisecond,
	"bind":          1000 * time.Millisecond,
	"sendCode":      500 * time.Millisecond,
	"getProfile":    300 * time.Millisecond,
	"updateProfile": 500 * time.Millisecond,
	"recharge":      1000 * time.Millisecond,
	"withdraw":      1000 * time.Millisecond,
	"getLogs":       500 * time.Millisecond,
	"uploadImage":   800 * time.Millisecond,
}

// Provider - реализация api.Provider поверх Backend без сети.
// Токен берется из того же источника, что и у живого транспорта.
type Provider struct {
	backend *Backend
	tokens  transport.TokenSource
	scale   float64

	Logger *zap.SugaredLogger
}

var _ api.Provider = (*Provider)(nil)

func NewProvider(b *Backend, tokens transport.TokenSource, scale float64, l *zap.SugaredLogger) *Provider {
	return &Provider{
		backend: b,
		tokens:  tokens,
		scale:   max(scale, 0),
		Logger:  l,
	}
}

func (p *Provider) wait(ctx context.Context, op string) error {
	d := time.Duration(float64(delays[op]) * p.scale)
	p.Logger.Debugw("mock api", "op", op, "delay", d)

	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		// для вызывающего это то же, что оборванный запрос
		return fmt.Errorf("%w: %v", transport.ErrRequest, ctx.Err())
	case <-timer.C:
		return nil
	}
}

func (p *Provider) userID() (string, bool) {
	if p.tokens == nil {
		return "", false
	}
	id, err := p.backend.Authenticate(p.tokens.Token())
	if err != nil {
		return "", false
	}
	return id, true
}

// Общая обвязка для методов с авторизацией: задержка, проверка токена, вызов бэкенда
func authed[T any](ctx context.Context, p *Provider, op string, fn func(userID string) *types.Envelope[T]) (*types.Envelope[T], error) {
	if err := p.wait(ctx, op); err != nil {
		return nil, err
	}

	id, ok := p.userID()
	if !ok {
		return types.Fail[T](types.CodeUnauthorized, ErrInvalidToken.Error()), nil
	}

	return fn(id), nil
}

func (p *Provider) Login(ctx context.Context, params types.LoginParams) (*types.Envelope[types.LoginResult], error) {
	if err := p.wait(ctx, "login"); err != nil {
		return nil, err
	}
	return p.backend.Login(params), nil
}

func (p *Provider) Bind(ctx context.Context, params types.BindParams) (*types.Envelope[types.UserProfile], error) {
	return authed(ctx, p, "bind", func(id string) *types.Envelope[types.UserProfile] {
		return p.backend.Bind(id, params)
	})
}

// Код отправляется и без входа, например для сброса
func (p *Provider) SendCode(ctx context.Context, params types.SendCodeParams) (*types.Envelope[types.Empty], error) {
	if err := p.wait(ctx, "sendCode"); err != nil {
		return nil, err
	}
	return p.backend.SendCode(params), nil
}

func (p *Provider) GetProfile(ctx context.Context) (*types.Envelope[types.UserProfile], error) {
	return authed(ctx, p, "getProfile", p.backend.GetProfile)
}

func (p *Provider) UpdateProfile(ctx context.Context, params types.UpdateProfileParams) (*types.Envelope[types.UserProfile], error) {
	return authed(ctx, p, "updateProfile", func(id string) *types.Envelope[types.UserProfile] {
		return p.backend.UpdateProfile(id, params)
	})
}

func (p *Provider) Recharge(ctx context.Context, params types.RechargeParams) (*types.Envelope[types.BalanceResult], error) {
	return authed(ctx, p, "recharge", func(id string) *types.Envelope[types.BalanceResult] {
		return p.backend.Recharge(id, params)
	})
}

func (p *Provider) Withdraw(ctx context.Context, params types.WithdrawParams) (*types.Envelope[types.BalanceResult], error) {
	return authed(ctx, p, "withdraw", func(id string) *types.Envelope[types.BalanceResult] {
		return p.backend.Withdraw(id, params)
	})
}

func (p *Provider) GetLogs(ctx context.Context, params types.CoinLogsParams) (*types.Envelope[types.PagedResult[types.CoinLogEntry]], error) {
	return authed(ctx, p, "getLogs", func(id string) *types.Envelope[types.PagedResult[types.CoinLogEntry]] {
		return p.backend.GetLogs(id, params)
	})
}

// Файл не отправляется, но если он есть - честно отдаем его размер и тип
func (p *Provider) UploadImage(ctx context.Context, filePath string) (*types.Envelope[types.UploadResult], error) {
	return authed(ctx, p, "uploadImage", func(string) *types.Envelope[types.UploadResult] {
		var (
			size int64
			typ  string
		)
		if fi, err := os.Stat(filePath); err == nil && !fi.IsDir() {
			size = fi.Size()
			if mt, err := mimetype.DetectFile(filePath); err == nil {
				typ = mt.String()
			}
		}
		return p.backend.UploadImage(size, typ)
	})
}
