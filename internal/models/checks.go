package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckAmount - сумма чека, опубликованная кассовым агентом магазина.
// Хранится только в памяти процесса, теряется при перезапуске.
type CheckAmount struct {
	Amount       decimal.Decimal
	RegisteredAt time.Time
}

// CheckAmountRequest - модель публикации суммы чека агентом 1С
type CheckAmountRequest struct {
	Amount float64 `json:"amount"`
}

// CheckAmountResponse - модель суммы чека для выдачи кассиру
type CheckAmountResponse struct {
	Amount       float64 `json:"amount"`
	RegisteredAt string  `json:"registered_at"`
}
