package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bounty/internal/api"
	"bounty/internal/mock"
	"bounty/internal/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const MockSecret = "mysuperpupermegaultraSecret"

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newTestRouter(t *testing.T) (http.Handler, *prometheus.Registry) {
	l := zap.NewNop().Sugar()
	b, err := mock.NewBackend(mock.Config{Secret: MockSecret, LedgerSize: 30}, l)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	return NewRouters(NewUserHandlers(b, l), reg, l), reg
}

func do(h http.Handler, method, path, token string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func envelopeOf[T any](t *testing.T, w *httptest.ResponseRecorder) types.Envelope[T] {
	t.Helper()
	var env types.Envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func login(t *testing.T, h http.Handler, code string) string {
	t.Helper()
	w := do(h, "POST", api.PathLogin, "", []byte(`{"code":"`+code+`"}`))
	require.Equal(t, http.StatusOK, w.Code)

	env := envelopeOf[types.LoginResult](t, w)
	require.Equal(t, types.CodeOK, env.Code)
	return env.Data.Token
}

func TestUserHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedCode   int
		expectedUser   string
	}{
		{
			name:           "Certified",
			body:           `{"code":"wx_code_1","userInfo":{"nickName":"Tom"}}`,
			expectedStatus: http.StatusOK,
			expectedCode:   types.CodeOK,
			expectedUser:   mock.UserCertified,
		},
		{
			name:           "Admin",
			body:           `{"code":"` + mock.CodeAdmin + `"}`,
			expectedStatus: http.StatusOK,
			expectedCode:   types.CodeOK,
			expectedUser:   mock.UserAdmin,
		},
		{
			name:           "InvalidCode",
			body:           `{"code":"` + mock.CodeInvalid + `"}`,
			expectedStatus: http.StatusOK,
			expectedCode:   types.CodeBadRequest,
		},
		{
			name:           "MalformedBody",
			body:           `{"code":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   types.CodeBadRequest,
		},
	}

	h, _ := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, "POST", api.PathLogin, "", []byte(tt.body))
			require.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			env := envelopeOf[types.LoginResult](t, w)
			assert.Equal(t, tt.expectedCode, env.Code)
			if tt.expectedUser == "" {
				assert.Nil(t, env.Data)
				return
			}
			require.NotNil(t, env.Data)
			assert.NotEmpty(t, env.Data.Token)
			assert.Equal(t, tt.expectedUser, env.Data.UserInfo.UserID)
		})
	}
}

func TestAuthRequired(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		name  string
		token string
	}{
		{name: "NoHeader", token: ""},
		{name: "Garbage", token: "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, "GET", api.PathProfile, tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, types.CodeUnauthorized, envelopeOf[types.Empty](t, w).Code)
		})
	}

	// без токена можно только логин и код
	w := do(h, "POST", api.PathSendCode, "", []byte(`{"email":"a@b.c","type":"bind"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.CodeOK, envelopeOf[types.Empty](t, w).Code)
}

func TestUserHandlers_Profile(t *testing.T) {
	h, _ := newTestRouter(t)
	token := login(t, h, "wx_code")

	w := do(h, "GET", api.PathProfile, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := envelopeOf[types.UserProfile](t, w)
	require.NotNil(t, env.Data)
	assert.Equal(t, mock.UserCertified, env.Data.UserID)

	w = do(h, "PUT", api.PathProfile, token, []byte(`{"nickname":"Neo"}`))
	require.Equal(t, http.StatusOK, w.Code)
	env = envelopeOf[types.UserProfile](t, w)
	require.NotNil(t, env.Data)
	assert.Equal(t, "Neo", env.Data.Nickname)

	w = do(h, "PUT", api.PathProfile, token, []byte(`nickname=Neo`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandlers_Wallet(t *testing.T) {
	h, _ := newTestRouter(t)
	token := login(t, h, "wx_code")

	tests := []struct {
		name         string
		path         string
		body         string
		expectedCode int
		balance      string
		frozen       string
	}{
		{
			name:         "Recharge",
			path:         api.PathRecharge,
			body:         `{"amount":5}`,
			expectedCode: types.CodeOK,
			balance:      "263.5",
			frozen:       "50",
		},
		{
			name:         "RechargeBadAmount",
			path:         api.PathRecharge,
			body:         `{"amount":3}`,
			expectedCode: types.CodeBadRequest,
		},
		{
			name:         "Withdraw",
			path:         api.PathWithdraw,
			body:         `{"coinAmount":13.5}`,
			expectedCode: types.CodeOK,
			balance:      "250",
			frozen:       "63.5",
		},
		{
			name:         "WithdrawTooMuch",
			path:         api.PathWithdraw,
			body:         `{"coinAmount":1000}`,
			expectedCode: types.CodeBadRequest,
		},
	}

	// шаги идут по порядку, баланс накапливается
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, "POST", tt.path, token, []byte(tt.body))
			require.Equal(t, http.StatusOK, w.Code)

			env := envelopeOf[types.BalanceResult](t, w)
			assert.Equal(t, tt.expectedCode, env.Code)
			if tt.balance == "" {
				assert.Nil(t, env.Data)
				return
			}
			require.NotNil(t, env.Data)
			assert.True(t, decimal.RequireFromString(tt.balance).Equal(env.Data.CoinBalance), env.Data.CoinBalance.String())
			assert.True(t, decimal.RequireFromString(tt.frozen).Equal(env.Data.FrozenBalance), env.Data.FrozenBalance.String())
		})
	}
}

func TestUserHandlers_GetLogs(t *testing.T) {
	h, _ := newTestRouter(t)
	token := login(t, h, "wx_code")

	w := do(h, "GET", api.PathLogs+"?page=2&pageSize=7", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := envelopeOf[types.PagedResult[types.CoinLogEntry]](t, w)
	require.NotNil(t, env.Data)
	assert.Equal(t, 30, env.Data.Total)
	assert.Equal(t, 2, env.Data.Page)
	assert.Len(t, env.Data.List, 7)

	// по умолчанию первая страница из 10
	w = do(h, "GET", api.PathLogs, token, nil)
	env = envelopeOf[types.PagedResult[types.CoinLogEntry]](t, w)
	require.NotNil(t, env.Data)
	assert.Equal(t, api.DefaultPage, env.Data.Page)
	assert.Len(t, env.Data.List, api.DefaultPageSize)

	w = do(h, "GET", api.PathLogs+"?type=Recharge&pageSize=100", token, nil)
	env = envelopeOf[types.PagedResult[types.CoinLogEntry]](t, w)
	require.NotNil(t, env.Data)
	for _, e := range env.Data.List {
		assert.Equal(t, types.LogRecharge, e.Type)
	}

	w = do(h, "GET", api.PathLogs+"?page=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartBody(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUserHandlers_UploadAvatar(t *testing.T) {
	h, _ := newTestRouter(t)
	token := login(t, h, "wx_code")

	tests := []struct {
		name           string
		field          string
		expectedStatus int
	}{
		{name: "Success", field: api.UploadFieldName, expectedStatus: http.StatusOK},
		{name: "WrongField", field: "image", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ct := multipartBody(t, tt.field, pngHeader)
			req := httptest.NewRequest("POST", api.PathAvatarUpload, body)
			req.Header.Set("Content-Type", ct)
			req.Header.Set("Authorization", "Bearer "+token)

			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			require.Equal(t, tt.expectedStatus, w.Code)

			env := envelopeOf[types.UploadResult](t, w)
			if tt.expectedStatus != http.StatusOK {
				assert.Equal(t, types.CodeBadRequest, env.Code)
				return
			}
			require.NotNil(t, env.Data)
			assert.Equal(t, "image/png", env.Data.Type)
			assert.Equal(t, int64(len(pngHeader)), env.Data.Size)
			assert.True(t, strings.HasPrefix(env.Data.URL, "https://picsum.photos/seed/"))
		})
	}
}

func TestMetrics(t *testing.T) {
	h, reg := newTestRouter(t)
	login(t, h, "wx_code")
	do(h, "GET", api.PathProfile, "", nil)

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "bounty_mockserver_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var route, status string
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "route":
					route = lp.GetValue()
				case "status":
					status = lp.GetValue()
				}
			}
			counts[route+" "+status] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(1), counts[api.PathLogin+" 200"])
	assert.Equal(t, float64(1), counts[api.PathProfile+" 401"])

	w := do(h, "GET", PathMetrics, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bounty_mockserver_request_duration_seconds")
}
