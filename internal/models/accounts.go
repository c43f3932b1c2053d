package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountData - модель счёта лояльности покупателя
type AccountData struct {
	ID         string
	CardNumber string
	Balance    decimal.Decimal
	CreatedAt  time.Time
}

// PurchaseRequest - модель регистрации покупки кассиром (начисление кэшбэка)
type PurchaseRequest struct {
	CardNumber string  `json:"card"`
	Amount     float64 `json:"amount"`
}

// PurchaseResponse - результат регистрации покупки
type PurchaseResponse struct {
	TransactionID int64   `json:"transaction_id"`
	EarnedPoints  float64 `json:"earned_points"`
	Balance       float64 `json:"balance"`
}
