package types

import "github.com/shopspring/decimal"

func init() {
	// Бэкенд отдает суммы числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true
}

// Роль пользователя
type RoleType string

const (
	RoleUser       RoleType = "User"
	RoleAdmin      RoleType = "Admin"
	RoleSuperAdmin RoleType = "SuperAdmin"
)

func (r RoleType) Valid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSuperAdmin
}

// Статус аккаунта
type AccountStatus string

const (
	StatusNormal AccountStatus = "Normal"
	StatusFrozen AccountStatus = "Frozen"

	// старое значение из первых версий апи, читаем его как Normal
	statusLegacyActive AccountStatus = "Active"
)

func (s *AccountStatus) UnmarshalText(b []byte) error {
	v := AccountStatus(b)
	if v == statusLegacyActive {
		v = StatusNormal
	}
	*s = v
	return nil
}

// Тип записи в истории монет
type CoinLogType string

const (
	LogRecharge CoinLogType = "Recharge"
	LogWithdraw CoinLogType = "Withdraw"
	LogFreeze   CoinLogType = "Freeze"
	LogReward   CoinLogType = "Reward"
	LogSettle   CoinLogType = "Settle"
)

// Типы записей, тк в компактном виде храним кодом (числом).
const (
	TypeLogRecharge = iota
	TypeLogWithdraw
	TypeLogFreeze
	TypeLogReward
	TypeLogSettle

	TypeLogError = -1
)

var (
	logTypesPoolForCode = []CoinLogType{
		LogRecharge, LogWithdraw, LogFreeze,
		LogReward, LogSettle,
	}

	logTypesPoolForTitle = map[CoinLogType]int{
		LogRecharge: TypeLogRecharge, LogWithdraw: TypeLogWithdraw,
		LogFreeze: TypeLogFreeze, LogReward: TypeLogReward,
		LogSettle: TypeLogSettle,
	}
)

// Количество известных типов записей
func CoinLogTypesCount() int {
	return len(logTypesPoolForCode)
}

func CodeToLogType(code int) CoinLogType {
	return logTypesPoolForCode[code]
}

func LogTypeToCode(title CoinLogType) int {
	code, found := logTypesPoolForTitle[title]
	if !found {
		return TypeLogError
	}

	return code
}

// Назначение кода подтверждения
type CodePurpose string

const (
	PurposeBind   CodePurpose = "bind"
	PurposeUpdate CodePurpose = "update"
	PurposeReset  CodePurpose = "reset"
)

func (p CodePurpose) Valid() bool {
	return p == PurposeBind || p == PurposeUpdate || p == PurposeReset
}

// Разрешенные суммы пополнения
var RechargeAmounts = []int{1, 2, 5, 10}

func IsRechargeAmount(amount int) bool {
	for _, a := range RechargeAmounts {
		if a == amount {
			return true
		}
	}
	return false
}
