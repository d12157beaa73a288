package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"bounty/internal/transport"
	"bounty/internal/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLive(t *testing.T, h http.HandlerFunc, token string) *LiveProvider {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	tc := transport.New(transport.Config{BaseURL: srv.URL}, transport.TokenFunc(func() string { return token }), zap.NewNop().Sugar())
	return NewLiveProvider(tc)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func tempImage(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "avatar.png")
	// сигнатура png, этого хватает для определения типа
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}
	require.NoError(t, os.WriteFile(path, png, 0o600))
	return path
}

func TestLiveProvider_Login(t *testing.T) {
	p := newLive(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathLogin, r.URL.Path)
		assert.Empty(t, r.Header.Get(transport.HeaderAuthorization))

		var req types.LoginParams
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "wx-code", req.Code)
		assert.Equal(t, "Neo", req.UserInfo.NickName)

		writeJSON(w, http.StatusOK, `{"code":200,"msg":"ok","data":{"token":"jwt","userInfo":{"userId":"u1","coinBalance":258.5,"accountStatus":"Active"}}}`)
	}, "")

	env, err := p.Login(context.Background(), types.LoginParams{Code: "wx-code", UserInfo: types.WechatProfile{NickName: "Neo"}})
	require.NoError(t, err)
	require.NotNil(t, env.Data)
	assert.Equal(t, "jwt", env.Data.Token)
	assert.True(t, env.Data.UserInfo.CoinBalance.Equal(decimal.RequireFromString("258.50")))
	assert.Equal(t, types.StatusNormal, env.Data.UserInfo.AccountStatus)
}

func TestLiveProvider_GetLogs(t *testing.T) {
	p := newLive(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathLogs, r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "Recharge", r.URL.Query().Get("type"))
		assert.Equal(t, "Bearer tok", r.Header.Get(transport.HeaderAuthorization))

		writeJSON(w, http.StatusOK, `{"code":200,"msg":"ok","data":{"list":[{"logId":"l1","type":"Recharge","amount":5,"createTime":"2024-01-02T10:00:00Z"}],"total":6,"page":2,"pageSize":5}}`)
	}, "tok")

	env, err := p.GetLogs(context.Background(), types.CoinLogsParams{Page: 2, PageSize: 5, Type: types.LogRecharge})
	require.NoError(t, err)
	require.NotNil(t, env.Data)
	assert.Equal(t, 6, env.Data.Total)
	require.Len(t, env.Data.List, 1)
	assert.Equal(t, types.LogRecharge, env.Data.List[0].Type)
}

func TestLiveProvider_ErrorEnvelope(t *testing.T) {
	p := newLive(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"code":400,"msg":"insufficient balance","data":"n/a"}`)
	}, "tok")

	env, err := p.Withdraw(context.Background(), types.WithdrawParams{CoinAmount: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.Equal(t, types.CodeBadRequest, env.Code)
	assert.Nil(t, env.Data)
}

func TestLiveProvider_StatusError(t *testing.T) {
	p := newLive(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"code":401,"msg":"expired"}`)
	}, "tok")

	_, err := p.GetProfile(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
	assert.True(t, IsUnauthorized(err))
}

func TestLiveProvider_UploadImage(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		expectedURL string
		expectedErr error
	}{
		{
			name:        "ObjectData",
			status:      http.StatusOK,
			body:        `{"code":200,"msg":"ok","data":{"url":"https://img/a.png","size":16,"type":"image/png"}}`,
			expectedURL: "https://img/a.png",
		},
		{
			name:        "StringData",
			status:      http.StatusOK,
			body:        `{"code":200,"message":"ok","data":"https://img/b.png"}`,
			expectedURL: "https://img/b.png",
		},
		{
			name:        "NotJSON",
			status:      http.StatusOK,
			body:        `<html>oops</html>`,
			expectedErr: ErrUpload,
		},
		{
			name:        "NoCode",
			status:      http.StatusOK,
			body:        `{"url":"https://img/c.png"}`,
			expectedErr: ErrUpload,
		},
		{
			name:        "Status500",
			status:      http.StatusInternalServerError,
			body:        `{"code":500}`,
			expectedErr: ErrUpload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newLive(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, PathAvatarUpload, r.URL.Path)
				assert.Equal(t, "Bearer tok", r.Header.Get(transport.HeaderAuthorization))

				f, hdr, err := r.FormFile(UploadFieldName)
				if !assert.NoError(t, err) {
					return
				}
				defer f.Close()
				assert.Equal(t, "avatar.png", hdr.Filename)
				assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))

				writeJSON(w, tt.status, tt.body)
			}, "tok")

			env, err := p.UploadImage(context.Background(), tempImage(t))
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, env.Data)
			assert.Equal(t, tt.expectedURL, env.Data.URL)
		})
	}
}

func TestLiveProvider_UploadMissingFile(t *testing.T) {
	p := newLive(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}, "tok")

	_, err := p.UploadImage(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrUpload)
	assert.ErrorIs(t, err, ErrTransport)
}
