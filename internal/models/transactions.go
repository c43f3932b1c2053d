package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Типы операций по счёту
const (
	TransactionTypeEarn   = "earn"
	TransactionTypeRedeem = "redeem"
)

// TransactionData - запись журнала операций, после создания не изменяется
type TransactionData struct {
	ID             int64
	AccountID      string
	StoreID        int64
	Type           string
	PointsAmount   decimal.Decimal
	PurchaseAmount decimal.Decimal
	DiscountID     *int64
	// выставляется при подтверждении без ответа 1С, для ручной сверки
	Unreconciled bool
	CreatedAt    time.Time
}

// RedemptionData - параметры списания баллов по подтверждённой скидке
type RedemptionData struct {
	AccountID string
	StoreID   int64
	Amount    decimal.Decimal
	// отложенная скидка, по которой выполняется списание
	DiscountID int64
	// исходная покупка, к которой применяется скидка
	PurchaseID int64
	// подтверждение без ответа 1С
	Unreconciled bool
}
