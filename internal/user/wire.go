package user

import (
	"context"

	"bounty/internal/api"
	"bounty/internal/app"
	"bounty/internal/mock"
	"bounty/internal/session"
	"bounty/internal/transport"

	"go.uber.org/zap"
)

/*
New собирает сервис по конфигу:
  - провайдер: моки или живой бэкенд, выбирается один раз
  - фасад поверх провайдера
  - сессия, токен транспорт берет из нее при каждом запросе
*/
func New(ctx context.Context, c *app.Config, p session.Persister, l *zap.SugaredLogger) (*Service, error) {
	var store *session.Store
	tokens := transport.TokenFunc(func() string {
		if store == nil {
			return ""
		}
		return store.Token()
	})

	provider, err := newProvider(c, tokens, l)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(provider, l)
	store = session.NewStore(ctx, client, p, l, session.WithKey(c.Storage.Key))

	return NewService(client, store, l), nil
}

func newProvider(c *app.Config, tokens transport.TokenSource, l *zap.SugaredLogger) (api.Provider, error) {
	if c.MockEnabled() {
		b, err := mock.NewBackend(mock.Config{
			Secret:     c.Mock.Secret,
			VerifyCode: c.Mock.VerifyCode,
			LedgerSize: c.Mock.LedgerSize,
		}, l)
		if err != nil {
			return nil, err
		}

		l.Infof("mock api enabled, delay scale %.2f", c.Mock.DelayScale)
		return mock.NewProvider(b, tokens, c.Mock.DelayScale, l), nil
	}

	tc := transport.New(transport.Config{
		BaseURL:   c.API.BaseURL,
		Timeout:   c.API.Timeout,
		RateLimit: c.API.RateLimit,
		Burst:     c.API.Burst,
	}, tokens, l)
	return api.NewLiveProvider(tc), nil
}
