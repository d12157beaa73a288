package api

import (
	"context"

	"bounty/internal/types"
)

// Provider - стратегия выполнения запросов: живой бэкенд или моки.
// Выбирается один раз при сборке клиента.
//
//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=api
type Provider interface {
	Login(ctx context.Context, p types.LoginParams) (*types.Envelope[types.LoginResult], error)
	Bind(ctx context.Context, p types.BindParams) (*types.Envelope[types.UserProfile], error)
	SendCode(ctx context.Context, p types.SendCodeParams) (*types.Envelope[types.Empty], error)

	GetProfile(ctx context.Context) (*types.Envelope[types.UserProfile], error)
	UpdateProfile(ctx context.Context, p types.UpdateProfileParams) (*types.Envelope[types.UserProfile], error)

	Recharge(ctx context.Context, p types.RechargeParams) (*types.Envelope[types.BalanceResult], error)
	Withdraw(ctx context.Context, p types.WithdrawParams) (*types.Envelope[types.BalanceResult], error)
	GetLogs(ctx context.Context, p types.CoinLogsParams) (*types.Envelope[types.PagedResult[types.CoinLogEntry]], error)

	UploadImage(ctx context.Context, filePath string) (*types.Envelope[types.UploadResult], error)
}
