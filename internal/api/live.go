package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"bounty/internal/transport"
	"bounty/internal/types"

	"github.com/tidwall/gjson"
)

// Пути апи
const (
	PathLogin        = "/user/login"
	PathBind         = "/user/bind"
	PathSendCode     = "/auth/send-code"
	PathProfile      = "/user/profile"
	PathRecharge     = "/coin/recharge"
	PathWithdraw     = "/coin/withdraw"
	PathLogs         = "/coin/logs"
	PathAvatarUpload = "/user/avatar/upload"

	UploadFieldName = "file"
)

func loading(text string) transport.Options {
	return transport.Options{ShowLoading: true, LoadingText: text}
}

// LiveProvider ходит в настоящий бэкенд через транспорт
type LiveProvider struct {
	tc *transport.Client
}

func NewLiveProvider(tc *transport.Client) *LiveProvider {
	return &LiveProvider{tc: tc}
}

var _ Provider = (*LiveProvider)(nil)

func (p *LiveProvider) Login(ctx context.Context, params types.LoginParams) (*types.Envelope[types.LoginResult], error) {
	raw, err := p.tc.Post(ctx, PathLogin, params, loading("Logging in..."))
	if err != nil {
		return nil, err
	}
	return decode[types.LoginResult](raw)
}

func (p *LiveProvider) Bind(ctx context.Context, params types.BindParams) (*types.Envelope[types.UserProfile], error) {
	raw, err := p.tc.Post(ctx, PathBind, params, loading("Verifying..."))
	if err != nil {
		return nil, err
	}
	return decode[types.UserProfile](raw)
}

func (p *LiveProvider) SendCode(ctx context.Context, params types.SendCodeParams) (*types.Envelope[types.Empty], error) {
	raw, err := p.tc.Post(ctx, PathSendCode, params, loading("Sending..."))
	if err != nil {
		return nil, err
	}
	return decode[types.Empty](raw)
}

func (p *LiveProvider) GetProfile(ctx context.Context) (*types.Envelope[types.UserProfile], error) {
	raw, err := p.tc.Get(ctx, PathProfile, nil)
	if err != nil {
		return nil, err
	}
	return decode[types.UserProfile](raw)
}

func (p *LiveProvider) UpdateProfile(ctx context.Context, params types.UpdateProfileParams) (*types.Envelope[types.UserProfile], error) {
	raw, err := p.tc.Put(ctx, PathProfile, params, loading("Updating..."))
	if err != nil {
		return nil, err
	}
	return decode[types.UserProfile](raw)
}

func (p *LiveProvider) Recharge(ctx context.Context, params types.RechargeParams) (*types.Envelope[types.BalanceResult], error) {
	raw, err := p.tc.Post(ctx, PathRecharge, params, loading("Recharging..."))
	if err != nil {
		return nil, err
	}
	return decode[types.BalanceResult](raw)
}

func (p *LiveProvider) Withdraw(ctx context.Context, params types.WithdrawParams) (*types.Envelope[types.BalanceResult], error) {
	raw, err := p.tc.Post(ctx, PathWithdraw, params, loading("Withdrawing..."))
	if err != nil {
		return nil, err
	}
	return decode[types.BalanceResult](raw)
}

func (p *LiveProvider) GetLogs(ctx context.Context, params types.CoinLogsParams) (*types.Envelope[types.PagedResult[types.CoinLogEntry]], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("pageSize", strconv.Itoa(params.PageSize))
	if params.Type != "" {
		q.Set("type", string(params.Type))
	}

	raw, err := p.tc.Get(ctx, PathLogs, q, loading("Loading..."))
	if err != nil {
		return nil, err
	}
	return decode[types.PagedResult[types.CoinLogEntry]](raw)
}

/*
Загрузка идет мимо обычного конверта транспорта:
  - статус вне 2xx                      -> ErrUpload
  - тело не json или без поля code      -> ErrUpload
  - data строкой (старый формат, только url) или объектом
*/
func (p *LiveProvider) UploadImage(ctx context.Context, filePath string) (*types.Envelope[types.UploadResult], error) {
	resp, err := p.tc.Upload(ctx, transport.UploadRequest{
		URL:       PathAvatarUpload,
		FilePath:  filePath,
		FieldName: UploadFieldName,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %w", ErrUpload, &transport.StatusError{StatusCode: resp.StatusCode, Body: resp.Body})
	}

	return parseUploadBody(resp.Body)
}

func parseUploadBody(body []byte) (*types.Envelope[types.UploadResult], error) {
	if !gjson.ValidBytes(body) {
		return nil, &Error{Op: "uploadImage", Kind: ErrUpload, Msg: "response is not json"}
	}

	code := gjson.GetBytes(body, "code")
	if !code.Exists() {
		return nil, &Error{Op: "uploadImage", Kind: ErrUpload, Msg: "response has no code"}
	}

	msg := gjson.GetBytes(body, "msg").String()
	if msg == "" {
		msg = gjson.GetBytes(body, "message").String()
	}

	env := &types.Envelope[types.UploadResult]{Code: int(code.Int()), Msg: msg}

	data := gjson.GetBytes(body, "data")
	switch {
	case data.Type == gjson.String:
		env.Data = &types.UploadResult{URL: data.String()}
	case data.IsObject():
		var res types.UploadResult
		if err := json.Unmarshal([]byte(data.Raw), &res); err != nil {
			return nil, &Error{Op: "uploadImage", Kind: ErrUpload, Msg: err.Error()}
		}
		env.Data = &res
	}

	return env, nil
}

// Разбор data из сырого конверта в нужный тип
func decode[T any](raw *transport.RawEnvelope) (*types.Envelope[T], error) {
	env := &types.Envelope[T]{Code: raw.Code, Msg: raw.Msg}
	if len(raw.Data) == 0 || string(raw.Data) == "null" {
		return env, nil
	}

	var d T
	if err := json.Unmarshal(raw.Data, &d); err != nil {
		// в ответе с ошибкой data нам не нужна
		if raw.Code != types.CodeOK {
			return env, nil
		}
		return nil, fmt.Errorf("%w: %v", transport.ErrBadEnvelope, err)
	}
	env.Data = &d

	return env, nil
}
