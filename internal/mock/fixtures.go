package mock

import (
	"fmt"
	"time"

	"bounty/internal/types"

	"github.com/shopspring/decimal"
)

// Пользователи моков
const (
	UserCertified   = "mock_user_001"
	UserUncertified = "mock_user_002"
	UserAdmin       = "mock_admin_001"
	UserSuperAdmin  = "mock_super_001"
)

// Подстроки кода логина, по которым выбирается пользователь
const (
	CodeUncertified = "uncertified"
	CodeAdmin       = "admin"
	CodeSuper       = "super"
	CodeInvalid     = "invalid"
)

const DefaultLedgerSize = 60

func sp(s string) *string { return &s }

func fixtureUsers() map[string]types.UserProfile {
	return map[string]types.UserProfile{
		UserCertified: {
			UserID:        UserCertified,
			Nickname:      "张小明",
			AvatarURL:     "https://thirdwx.qlogo.cn/mmopen/vi_32/certified/132",
			RoleType:      types.RoleUser,
			IsCertified:   true,
			AccountStatus: types.StatusNormal,
			CoinBalance:   decimal.RequireFromString("258.50"),
			FrozenBalance: decimal.RequireFromString("50.00"),
			StudentID:     sp("2021001234"),
			Email:         sp("zhangxiaoming@example.com"),
		},
		UserUncertified: {
			UserID:        UserUncertified,
			Nickname:      "微信用户",
			AvatarURL:     "https://thirdwx.qlogo.cn/mmopen/vi_32/uncertified/132",
			RoleType:      types.RoleUser,
			AccountStatus: types.StatusNormal,
			CoinBalance:   decimal.Zero,
			FrozenBalance: decimal.Zero,
		},
		UserAdmin: {
			UserID:        UserAdmin,
			Nickname:      "系统管理员",
			AvatarURL:     "https://thirdwx.qlogo.cn/mmopen/vi_32/admin/132",
			RoleType:      types.RoleAdmin,
			IsCertified:   true,
			AccountStatus: types.StatusNormal,
			CoinBalance:   decimal.RequireFromString("9999.00"),
			FrozenBalance: decimal.Zero,
			StudentID:     sp("2020000001"),
			Email:         sp("admin@example.com"),
		},
		UserSuperAdmin: {
			UserID:        UserSuperAdmin,
			Nickname:      "超级管理员",
			AvatarURL:     "https://thirdwx.qlogo.cn/mmopen/vi_32/super/132",
			RoleType:      types.RoleSuperAdmin,
			IsCertified:   true,
			AccountStatus: types.StatusNormal,
			CoinBalance:   decimal.Zero,
			FrozenBalance: decimal.Zero,
			Email:         sp("root@example.com"),
		},
	}
}

func day(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, time.UTC)
}

// Семь записей из первой версии моков, свежие сверху
func seedLedger() []types.CoinLogEntry {
	return []types.CoinLogEntry{
		{LogID: "log_001", Type: types.LogRecharge, Amount: decimal.NewFromInt(10), CreateTime: day(2026, 1, 7, 14, 30)},
		{LogID: "log_002", Type: types.LogReward, Amount: decimal.NewFromInt(-20), RelatedItemID: sp("item_123"), CreateTime: day(2026, 1, 6, 10, 15)},
		{LogID: "log_003", Type: types.LogSettle, Amount: decimal.NewFromInt(20), RelatedItemID: sp("item_123"), CreateTime: day(2026, 1, 5, 16, 20)},
		{LogID: "log_004", Type: types.LogReward, Amount: decimal.NewFromInt(30), RelatedItemID: sp("item_456"), CreateTime: day(2026, 1, 4, 9, 45)},
		{LogID: "log_005", Type: types.LogWithdraw, Amount: decimal.NewFromInt(-100), CreateTime: day(2026, 1, 3, 11, 30)},
		{LogID: "log_006", Type: types.LogRecharge, Amount: decimal.NewFromInt(50), CreateTime: day(2026, 1, 2, 15, 0)},
		{LogID: "log_007", Type: types.LogFreeze, Amount: decimal.Zero, RelatedItemID: sp("item_789"), CreateTime: day(2026, 1, 1, 13, 20)},
	}
}

// Журнал для пагинации: начало из seedLedger, дальше сгенерированные записи,
// по одной в день в прошлое. Типы идут по кругу.
func fixtureLedger(size int) []types.CoinLogEntry {
	ledger := seedLedger()
	if size <= len(ledger) {
		return ledger[:max(size, 0)]
	}

	last := ledger[len(ledger)-1].CreateTime
	for i := len(ledger); i < size; i++ {
		code := i % types.CoinLogTypesCount()
		typ := types.CodeToLogType(code)

		amount := decimal.NewFromInt(int64(i%10 + 1))
		if typ == types.LogWithdraw || typ == types.LogReward {
			amount = amount.Neg()
		}

		ledger = append(ledger, types.CoinLogEntry{
			LogID:      fmt.Sprintf("log_%03d", i+1),
			Type:       typ,
			Amount:     amount,
			CreateTime: last.AddDate(0, 0, -(i - 6)),
		})
	}

	return ledger
}
