package api

import (
	"context"
	"strings"

	"bounty/internal/types"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Client - фасад апи. Сам состояния не хранит: проверяет входные данные,
// отдает запрос провайдеру и разворачивает конверт ответа.
type Client struct {
	provider Provider
	validate *validator.Validate
	Logger   *zap.SugaredLogger
}

func NewClient(p Provider, l *zap.SugaredLogger) *Client {
	return &Client{
		provider: p,
		validate: validator.New(),
		Logger:   l,
	}
}

func (c *Client) Login(ctx context.Context, params types.LoginParams) (*types.LoginResult, error) {
	if strings.TrimSpace(params.Code) == "" {
		return nil, c.invalid("login", ErrAuth, "login code is required")
	}

	env, err := c.provider.Login(ctx, params)
	res, err := unwrap(c, "login", ErrAuth, env, err)
	if err != nil {
		return nil, err
	}
	if res == nil || res.Token == "" {
		return nil, c.fail("login", ErrAuth, env.Code, "empty login result")
	}

	return res, nil
}

// Bind - реальное имя и студенческий. После успеха профиль нужно перечитать,
// бэкенд может не вернуть его в data.
func (c *Client) Bind(ctx context.Context, params types.BindParams) (*types.UserProfile, error) {
	if err := c.check("bind", params); err != nil {
		return nil, err
	}

	env, err := c.provider.Bind(ctx, params)
	return unwrap(c, "bind", ErrValidation, env, err)
}

func (c *Client) SendCode(ctx context.Context, params types.SendCodeParams) error {
	if err := c.check("sendCode", params); err != nil {
		return err
	}

	env, err := c.provider.SendCode(ctx, params)
	_, err = unwrap(c, "sendCode", ErrValidation, env, err)
	return err
}

func (c *Client) GetProfile(ctx context.Context) (*types.UserProfile, error) {
	env, err := c.provider.GetProfile(ctx)
	res, err := unwrap(c, "getProfile", ErrRejected, env, err)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, c.fail("getProfile", ErrRejected, env.Code, "empty profile")
	}
	return res, nil
}

// UpdateProfile меняет только переданные поля, смена почты требует код
func (c *Client) UpdateProfile(ctx context.Context, params types.UpdateProfileParams) (*types.UserProfile, error) {
	if params.Patch().Empty() {
		return nil, c.invalid("updateProfile", ErrValidation, "nothing to update")
	}
	if params.Email != nil && (params.VerifyCode == nil || *params.VerifyCode == "") {
		return nil, c.invalid("updateProfile", ErrValidation, "verify code is required to change email")
	}
	if err := c.check("updateProfile", params); err != nil {
		return nil, err
	}

	env, err := c.provider.UpdateProfile(ctx, params)
	return unwrap(c, "updateProfile", ErrValidation, env, err)
}

// Recharge: сумму проверяем до запроса, в сеть с неверной суммой не ходим
func (c *Client) Recharge(ctx context.Context, amount int) (*types.BalanceResult, error) {
	params := types.RechargeParams{Amount: amount}
	if !types.IsRechargeAmount(amount) {
		return nil, c.invalid("recharge", ErrValidation, "amount must be one of 1, 2, 5, 10")
	}

	env, err := c.provider.Recharge(ctx, params)
	return c.balance("recharge", ErrValidation, env, err)
}

func (c *Client) Withdraw(ctx context.Context, coinAmount decimal.Decimal) (*types.BalanceResult, error) {
	if !coinAmount.IsPositive() {
		return nil, c.invalid("withdraw", ErrValidation, "coin amount must be positive")
	}

	env, err := c.provider.Withdraw(ctx, types.WithdrawParams{CoinAmount: coinAmount})

	// Единственный описанный отказ вывода - нехватка средств
	kind := ErrRejected
	if env != nil && env.Code == types.CodeBadRequest {
		kind = ErrInsufficientBalance
	}
	return c.balance("withdraw", kind, env, err)
}

func (c *Client) GetLogs(ctx context.Context, params types.CoinLogsParams) (*types.PagedResult[types.CoinLogEntry], error) {
	if params.Page <= 0 {
		params.Page = DefaultPage
	}
	if params.PageSize <= 0 {
		params.PageSize = DefaultPageSize
	}
	if err := c.check("getLogs", params); err != nil {
		return nil, err
	}

	env, err := c.provider.GetLogs(ctx, params)
	res, err := unwrap(c, "getLogs", ErrRejected, env, err)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &types.PagedResult[types.CoinLogEntry]{
			List:     []types.CoinLogEntry{},
			Page:     params.Page,
			PageSize: params.PageSize,
		}, nil
	}
	if !res.Valid() {
		return nil, c.fail("getLogs", ErrRejected, env.Code, "malformed page")
	}

	return res, nil
}

func (c *Client) UploadImage(ctx context.Context, filePath string) (*types.UploadResult, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, c.invalid("uploadImage", ErrValidation, "file path is required")
	}

	env, err := c.provider.UploadImage(ctx, filePath)
	res, err := unwrap(c, "uploadImage", ErrUpload, env, err)
	if err != nil {
		return nil, err
	}
	if res == nil || res.URL == "" {
		return nil, c.fail("uploadImage", ErrUpload, env.Code, "empty upload result")
	}
	return res, nil
}

func (c *Client) balance(op string, kind error, env *types.Envelope[types.BalanceResult], err error) (*types.BalanceResult, error) {
	res, err := unwrap(c, op, kind, env, err)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, c.fail(op, ErrRejected, env.Code, "empty balance")
	}
	return res, nil
}

/*
Разворачиваем ответ провайдера:
  - ошибка транспорта     -> как есть
  - код 401 в конверте    -> ErrUnauthorized
  - любой другой не 200   -> kind операции
*/
func unwrap[T any](c *Client, op string, kind error, env *types.Envelope[T], err error) (*T, error) {
	if err != nil {
		c.Logger.Errorf("%s failed. More details: %v", op, err)
		return nil, err
	}
	if env == nil {
		return nil, c.fail(op, ErrRejected, 0, "empty response")
	}
	if env.Code == types.CodeUnauthorized {
		return nil, c.fail(op, ErrUnauthorized, env.Code, env.Msg)
	}
	if !env.OK() {
		return nil, c.fail(op, kind, env.Code, env.Msg)
	}

	return env.Data, nil
}

func (c *Client) check(op string, params any) error {
	if err := c.validate.Struct(params); err != nil {
		return c.invalid(op, ErrValidation, err.Error())
	}
	return nil
}

func (c *Client) fail(op string, kind error, code int, msg string) error {
	err := &Error{Op: op, Kind: kind, Code: code, Msg: msg}
	c.Logger.Errorf("%v. More details: %v", kind, err)
	return err
}

// Отказ до похода в сеть
func (c *Client) invalid(op string, kind error, msg string) error {
	err := &Error{Op: op, Kind: kind, Msg: msg}
	c.Logger.Infof("%s rejected locally: %s", op, msg)
	return err
}
