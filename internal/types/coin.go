package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Запись в истории монет. Выдается бэкендом, клиент только читает.
type CoinLogEntry struct {
	LogID         string          `json:"logId"`
	Type          CoinLogType     `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // положительная - приход, отрицательная - расход
	RelatedItemID *string         `json:"relatedItemId,omitempty"`
	CreateTime    time.Time       `json:"createTime"`
}

type RechargeParams struct {
	Amount int `json:"amount" validate:"oneof=1 2 5 10"`
}

type WithdrawParams struct {
	CoinAmount decimal.Decimal `json:"coinAmount"`
}

// Баланс после операции с кошельком
type BalanceResult struct {
	CoinBalance   decimal.Decimal `json:"coinBalance"`
	FrozenBalance decimal.Decimal `json:"frozenBalance"`
}

type CoinLogsParams struct {
	Page     int         `json:"page" validate:"min=1"`
	PageSize int         `json:"pageSize" validate:"min=1,max=100"`
	Type     CoinLogType `json:"type,omitempty" validate:"omitempty,oneof=Recharge Withdraw Freeze Reward Settle"`
}
