package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	bearerPrefix        = "Bearer "
)

// Откуда брать текущий токен сессии
type TokenSource interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string {
	return f()
}

// Подсказка для интерфейса (индикатор загрузки), на сам запрос не влияет
type Options struct {
	ShowLoading bool
	LoadingText string
}

type LoadingHook interface {
	Start(text string)
	Stop()
}

// Сырой конверт, data разбирает вызывающий код
type RawEnvelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	Burst     int
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.SugaredLogger
	Tokens     TokenSource
	Loading    LoadingHook
	Limiter    *rate.Limiter
}

func New(cfg Config, tokens TokenSource, l *zap.SugaredLogger) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		// таймаут - свойство транспорта, по умолчанию его нет
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Logger:     l,
		Tokens:     tokens,
		Loading:    &logLoading{logger: l},
	}

	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.Limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return c
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, opts ...Options) (*RawEnvelope, error) {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, opts)
}

func (c *Client) Post(ctx context.Context, path string, body any, opts ...Options) (*RawEnvelope, error) {
	return c.do(ctx, http.MethodPost, path, body, opts)
}

func (c *Client) Put(ctx context.Context, path string, body any, opts ...Options) (*RawEnvelope, error) {
	return c.do(ctx, http.MethodPut, path, body, opts)
}

// ResolveURL: относительный путь дополняем базовым адресом, абсолютный оставляем как есть
func (c *Client) ResolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}

func (c *Client) do(ctx context.Context, method, path string, body any, opts []Options) (*RawEnvelope, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.ShowLoading && c.Loading != nil {
		c.Loading.Start(o.LoadingText)
		defer c.Loading.Stop()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	fullURL := c.ResolveURL(path)
	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrRequest, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req.Header)

	respBody, status, err := c.send(req)
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		c.Logger.Errorf("%v. More details: %s %s - %d", ErrRequest, method, fullURL, status)
		return nil, &StatusError{StatusCode: status, Body: respBody}
	}

	var env RawEnvelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		c.Logger.Errorf("%v. More details: %v", ErrBadEnvelope, err)
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}

	return &env, nil
}

// send выполняет запрос и читает тело целиком
func (c *Client) send(req *http.Request) ([]byte, int, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(req.Context()); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrRequest, err)
		}
	}

	req.Header.Set(HeaderRequestID, uuid.New().String())
	c.Logger.Debugw("http request",
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", req.Header.Get(HeaderRequestID),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Errorf("%v. More details: %v", ErrRequest, err)
		return nil, 0, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response: %v", ErrRequest, err)
	}

	c.Logger.Debugw("http response", "status", resp.StatusCode, "bytes", len(data))
	return data, resp.StatusCode, nil
}

func (c *Client) authorize(h http.Header) {
	if c.Tokens == nil {
		return
	}
	if t := c.Tokens.Token(); t != "" {
		h.Set(HeaderAuthorization, bearerPrefix+t)
	}
}

// Индикатор загрузки по умолчанию просто пишет в лог
type logLoading struct {
	logger *zap.SugaredLogger
}

func (l *logLoading) Start(text string) {
	l.logger.Debugw("loading", "text", text)
}

func (l *logLoading) Stop() {
	l.logger.Debug("loading done")
}
