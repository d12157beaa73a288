package api

import (
	"context"
	"errors"
	"testing"

	"bounty/internal/transport"
	"bounty/internal/types"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) (*Client, *MockProvider) {
	ctrl := gomock.NewController(t)
	p := NewMockProvider(ctrl)
	return NewClient(p, zap.NewNop().Sugar()), p
}

func strPtr(s string) *string { return &s }

func TestClient_Login(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		mockSetup   func(p *MockProvider)
		expectedErr error
	}{
		{
			name: "Success",
			code: "wx-code",
			mockSetup: func(p *MockProvider) {
				p.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(types.OK(types.LoginResult{Token: "t1", UserInfo: types.UserProfile{UserID: "u1"}}, "ok"), nil).
					Times(1)
			},
		},
		{
			name:        "EmptyCode",
			code:        "  ",
			mockSetup:   func(p *MockProvider) {},
			expectedErr: ErrAuth,
		},
		{
			name: "Rejected",
			code: "invalid",
			mockSetup: func(p *MockProvider) {
				p.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(types.Fail[types.LoginResult](types.CodeBadRequest, "bad code"), nil).
					Times(1)
			},
			expectedErr: ErrAuth,
		},
		{
			name: "EmptyToken",
			code: "wx-code",
			mockSetup: func(p *MockProvider) {
				p.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(types.OK(types.LoginResult{}, "ok"), nil).
					Times(1)
			},
			expectedErr: ErrAuth,
		},
		{
			name: "Transport",
			code: "wx-code",
			mockSetup: func(p *MockProvider) {
				p.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(nil, transport.ErrRequest).
					Times(1)
			},
			expectedErr: ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, p := newTestClient(t)
			tt.mockSetup(p)

			res, err := c.Login(context.Background(), types.LoginParams{Code: tt.code})
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "t1", res.Token)
			assert.Equal(t, "u1", res.UserInfo.UserID)
		})
	}
}

func TestClient_Recharge(t *testing.T) {
	t.Run("InvalidAmountNeverReachesProvider", func(t *testing.T) {
		for _, amount := range []int{0, 3, -1, 100} {
			c, _ := newTestClient(t)
			_, err := c.Recharge(context.Background(), amount)
			assert.ErrorIs(t, err, ErrValidation)
		}
	})

	t.Run("Success", func(t *testing.T) {
		c, p := newTestClient(t)
		p.EXPECT().Recharge(gomock.Any(), types.RechargeParams{Amount: 5}).
			Return(types.OK(types.BalanceResult{CoinBalance: decimal.RequireFromString("263.5")}, "ok"), nil).
			Times(1)

		res, err := c.Recharge(context.Background(), 5)
		require.NoError(t, err)
		assert.True(t, res.CoinBalance.Equal(decimal.RequireFromString("263.50")))
	})
}

func TestClient_Withdraw(t *testing.T) {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		env         *types.Envelope[types.BalanceResult]
		callsAPI    bool
		expectedErr error
	}{
		{
			name:        "Zero",
			amount:      decimal.Zero,
			expectedErr: ErrValidation,
		},
		{
			name:        "Negative",
			amount:      decimal.NewFromInt(-5),
			expectedErr: ErrValidation,
		},
		{
			name:        "Insufficient",
			amount:      decimal.NewFromInt(1000),
			env:         types.Fail[types.BalanceResult](types.CodeBadRequest, "insufficient balance"),
			callsAPI:    true,
			expectedErr: ErrInsufficientBalance,
		},
		{
			name:        "OtherRejection",
			amount:      decimal.NewFromInt(10),
			env:         types.Fail[types.BalanceResult](types.CodeServerError, "oops"),
			callsAPI:    true,
			expectedErr: ErrRejected,
		},
		{
			name:        "Unauthorized",
			amount:      decimal.NewFromInt(10),
			env:         types.Fail[types.BalanceResult](types.CodeUnauthorized, "token expired"),
			callsAPI:    true,
			expectedErr: ErrUnauthorized,
		},
		{
			name:     "Success",
			amount:   decimal.NewFromInt(10),
			env:      types.OK(types.BalanceResult{CoinBalance: decimal.NewFromInt(1), FrozenBalance: decimal.NewFromInt(60)}, "ok"),
			callsAPI: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, p := newTestClient(t)
			if tt.callsAPI {
				p.EXPECT().Withdraw(gomock.Any(), gomock.Any()).Return(tt.env, nil).Times(1)
			}

			res, err := c.Withdraw(context.Background(), tt.amount)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, res.FrozenBalance.Equal(decimal.NewFromInt(60)))
		})
	}
}

func TestClient_UpdateProfile(t *testing.T) {
	tests := []struct {
		name        string
		params      types.UpdateProfileParams
		callsAPI    bool
		expectedErr error
	}{
		{
			name:        "Empty",
			params:      types.UpdateProfileParams{},
			expectedErr: ErrValidation,
		},
		{
			name:        "EmailWithoutCode",
			params:      types.UpdateProfileParams{Email: strPtr("a@b.com")},
			expectedErr: ErrValidation,
		},
		{
			name:        "BadEmail",
			params:      types.UpdateProfileParams{Email: strPtr("not-an-email"), VerifyCode: strPtr("123456")},
			expectedErr: ErrValidation,
		},
		{
			name:     "Nickname",
			params:   types.UpdateProfileParams{Nickname: strPtr("Neo")},
			callsAPI: true,
		},
		{
			name:     "EmailWithCode",
			params:   types.UpdateProfileParams{Email: strPtr("a@b.com"), VerifyCode: strPtr("123456")},
			callsAPI: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, p := newTestClient(t)
			if tt.callsAPI {
				p.EXPECT().UpdateProfile(gomock.Any(), tt.params).
					Return(types.OK(types.UserProfile{UserID: "u1", Nickname: "Neo"}, "ok"), nil).
					Times(1)
			}

			res, err := c.UpdateProfile(context.Background(), tt.params)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", res.UserID)
		})
	}
}

func TestClient_SendCode(t *testing.T) {
	c, p := newTestClient(t)

	err := c.SendCode(context.Background(), types.SendCodeParams{Email: "a@b.com", Type: "login"})
	assert.ErrorIs(t, err, ErrValidation)

	err = c.SendCode(context.Background(), types.SendCodeParams{Email: "nope", Type: types.PurposeBind})
	assert.ErrorIs(t, err, ErrValidation)

	p.EXPECT().SendCode(gomock.Any(), gomock.Any()).
		Return(types.OK(types.Empty{}, "sent"), nil).
		Times(1)
	assert.NoError(t, c.SendCode(context.Background(), types.SendCodeParams{Email: "a@b.com", Type: types.PurposeBind}))
}

func TestClient_Bind(t *testing.T) {
	c, p := newTestClient(t)

	_, err := c.Bind(context.Background(), types.BindParams{StudentID: "s1"})
	assert.ErrorIs(t, err, ErrValidation)

	params := types.BindParams{StudentID: "2021001", RealName: "Li", Email: "li@uni.edu", VerifyCode: "000000"}
	p.EXPECT().Bind(gomock.Any(), params).
		Return(types.Fail[types.UserProfile](types.CodeBadRequest, "wrong code"), nil).
		Times(1)

	_, err = c.Bind(context.Background(), params)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, types.CodeBadRequest, apiErr.Code)
	assert.Equal(t, "wrong code", apiErr.Msg)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestClient_GetProfile(t *testing.T) {
	c, p := newTestClient(t)

	p.EXPECT().GetProfile(gomock.Any()).
		Return(types.Fail[types.UserProfile](types.CodeUnauthorized, "expired"), nil).
		Times(1)
	_, err := c.GetProfile(context.Background())
	assert.True(t, IsUnauthorized(err))

	p.EXPECT().GetProfile(gomock.Any()).
		Return(nil, &transport.StatusError{StatusCode: 401}).
		Times(1)
	_, err = c.GetProfile(context.Background())
	assert.True(t, IsUnauthorized(err))
	assert.ErrorIs(t, err, ErrTransport)

	p.EXPECT().GetProfile(gomock.Any()).
		Return(types.OK(types.UserProfile{UserID: "u1"}, "ok"), nil).
		Times(1)
	res, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", res.UserID)
}

func TestClient_GetLogs(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		c, p := newTestClient(t)
		p.EXPECT().GetLogs(gomock.Any(), types.CoinLogsParams{Page: DefaultPage, PageSize: DefaultPageSize}).
			Return(types.OK(types.PagedResult[types.CoinLogEntry]{List: []types.CoinLogEntry{}, Page: 1, PageSize: 10}, "ok"), nil).
			Times(1)

		res, err := c.GetLogs(context.Background(), types.CoinLogsParams{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Page)
	})

	t.Run("UnknownType", func(t *testing.T) {
		c, _ := newTestClient(t)
		_, err := c.GetLogs(context.Background(), types.CoinLogsParams{Type: "Gift"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("MalformedPage", func(t *testing.T) {
		c, p := newTestClient(t)
		p.EXPECT().GetLogs(gomock.Any(), gomock.Any()).
			Return(types.OK(types.PagedResult[types.CoinLogEntry]{
				List:     make([]types.CoinLogEntry, 3),
				Page:     1,
				PageSize: 2,
			}, "ok"), nil).
			Times(1)

		_, err := c.GetLogs(context.Background(), types.CoinLogsParams{Page: 1, PageSize: 2})
		assert.ErrorIs(t, err, ErrRejected)
	})
}

func TestClient_UploadImage(t *testing.T) {
	c, p := newTestClient(t)

	_, err := c.UploadImage(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)

	p.EXPECT().UploadImage(gomock.Any(), "a.png").
		Return(types.OK(types.UploadResult{}, "ok"), nil).
		Times(1)
	_, err = c.UploadImage(context.Background(), "a.png")
	assert.ErrorIs(t, err, ErrUpload)

	p.EXPECT().UploadImage(gomock.Any(), "a.png").
		Return(types.OK(types.UploadResult{URL: "https://img/1.png"}, "ok"), nil).
		Times(1)
	res, err := c.UploadImage(context.Background(), "a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://img/1.png", res.URL)
}
