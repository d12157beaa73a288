package user

import (
	"context"

	"bounty/internal/api"
	"bounty/internal/session"
	"bounty/internal/types"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service - операции аккаунта для интерфейса: сначала запрос через фасад,
// потом локальное обновление сессии
type Service struct {
	API    *api.Client
	Store  *session.Store
	Logger *zap.SugaredLogger
}

func NewService(c *api.Client, s *session.Store, l *zap.SugaredLogger) *Service {
	return &Service{
		API:    c,
		Store:  s,
		Logger: l,
	}
}

// Без сессии в сеть не ходим
func (s *Service) requireSession(op string) error {
	if s.Store.IsLoggedIn() {
		return nil
	}
	return &api.Error{Op: op, Kind: api.ErrNotAuthenticated, Msg: "login required"}
}

func (s *Service) Login(ctx context.Context, code string, wx types.WechatProfile) (*types.UserProfile, error) {
	return s.Store.Login(ctx, types.LoginParams{Code: code, UserInfo: wx})
}

func (s *Service) Logout(ctx context.Context) {
	s.Store.Logout(ctx)
}

func (s *Service) Refresh(ctx context.Context) (*types.UserProfile, error) {
	return s.Store.RefreshProfile(ctx)
}

func (s *Service) Check(ctx context.Context) bool {
	return s.Store.CheckSession(ctx)
}

// Profile - локальный профиль без запроса к бэкенду
func (s *Service) Profile() (*types.UserProfile, error) {
	sess := s.Store.Snapshot()
	if sess.UserInfo == nil {
		return nil, s.requireSession("profile")
	}
	return sess.UserInfo, nil
}

// Код подтверждения можно запросить и без логина (сброс)
func (s *Service) SendCode(ctx context.Context, email string, purpose types.CodePurpose) error {
	return s.API.SendCode(ctx, types.SendCodeParams{Email: email, Type: purpose})
}

// Bind: после привязки студенческого профиль перечитываем целиком,
// тк бэкенд мог поменять роль и статус
func (s *Service) Bind(ctx context.Context, params types.BindParams) (*types.UserProfile, error) {
	if err := s.requireSession("bind"); err != nil {
		return nil, err
	}

	if _, err := s.API.Bind(ctx, params); err != nil {
		return nil, err
	}

	p, err := s.Store.RefreshProfile(ctx)
	if err != nil {
		s.Logger.Warnf("bind succeeded but profile refresh failed: %v", err)
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, params types.UpdateProfileParams) (*types.UserProfile, error) {
	if err := s.requireSession("updateProfile"); err != nil {
		return nil, err
	}

	res, err := s.API.UpdateProfile(ctx, params)
	if err != nil {
		return nil, err
	}

	// бэкенд может не вернуть профиль, тогда применяем то, что отправили
	if res != nil && res.UserID != "" {
		err = s.Store.ReplaceProfile(ctx, *res)
	} else {
		err = s.Store.PatchProfile(ctx, params.Patch())
	}
	if err != nil {
		return nil, err
	}

	return s.Profile()
}

func (s *Service) Recharge(ctx context.Context, amount int) (*types.BalanceResult, error) {
	if err := s.requireSession("recharge"); err != nil {
		return nil, err
	}

	res, err := s.API.Recharge(ctx, amount)
	if err != nil {
		return nil, err
	}

	if err = s.applyBalance(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) Withdraw(ctx context.Context, amount decimal.Decimal) (*types.BalanceResult, error) {
	if err := s.requireSession("withdraw"); err != nil {
		return nil, err
	}

	res, err := s.API.Withdraw(ctx, amount)
	if err != nil {
		return nil, err
	}

	if err = s.applyBalance(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) applyBalance(ctx context.Context, res *types.BalanceResult) error {
	if err := s.Store.UpdateBalance(ctx, res.CoinBalance); err != nil {
		return err
	}
	return s.Store.UpdateFrozenBalance(ctx, res.FrozenBalance)
}

func (s *Service) Logs(ctx context.Context, params types.CoinLogsParams) (*types.PagedResult[types.CoinLogEntry], error) {
	if err := s.requireSession("getLogs"); err != nil {
		return nil, err
	}
	return s.API.GetLogs(ctx, params)
}

/*
Смена аватара в два шага:
  - загрузка картинки -> UploadImage
  - сохранение ссылки в профиле -> UpdateProfile
*/
func (s *Service) UploadAvatar(ctx context.Context, filePath string) (*types.UserProfile, error) {
	if err := s.requireSession("uploadImage"); err != nil {
		return nil, err
	}

	up, err := s.API.UploadImage(ctx, filePath)
	if err != nil {
		return nil, err
	}

	s.Logger.Debugw("avatar uploaded",
		"url", up.URL,
		"size", up.Size,
	)

	return s.UpdateProfile(ctx, types.UpdateProfileParams{AvatarURL: &up.URL})
}
