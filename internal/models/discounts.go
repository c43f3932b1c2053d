package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountStatus - замкнутый набор состояний отложенной скидки
type DiscountStatus string

const (
	DiscountStatusPending    DiscountStatus = "pending"
	DiscountStatusProcessing DiscountStatus = "processing"
	DiscountStatusApplied    DiscountStatus = "applied"
	DiscountStatusFailed     DiscountStatus = "failed"
	DiscountStatusExpired    DiscountStatus = "expired"
)

// Valid проверяет, что статус принадлежит известному набору
func (s DiscountStatus) Valid() bool {
	switch s {
	case DiscountStatusPending, DiscountStatusProcessing,
		DiscountStatusApplied, DiscountStatusFailed, DiscountStatusExpired:
		return true
	}
	return false
}

// Terminal - из терминального статуса переходов нет
func (s DiscountStatus) Terminal() bool {
	switch s {
	case DiscountStatusApplied, DiscountStatusFailed, DiscountStatusExpired:
		return true
	}
	return false
}

// CanTransition проверяет допустимость перехода статусов:
// pending -> processing -> applied|failed, pending|processing -> expired
func (s DiscountStatus) CanTransition(to DiscountStatus) bool {
	switch s {
	case DiscountStatusPending:
		return to == DiscountStatusProcessing || to == DiscountStatusExpired
	case DiscountStatusProcessing:
		return to == DiscountStatusApplied || to == DiscountStatusFailed || to == DiscountStatusExpired
	}
	return false
}

// Исходы подтверждения скидки со стороны 1С
const (
	OutcomeApplied = "applied"
	OutcomeFailed  = "failed"
)

// PendingDiscount - модель отложенной скидки, ожидающей применения на кассе
type PendingDiscount struct {
	ID             int64
	StoreID        int64
	TransactionID  int64
	AccountID      string
	DiscountAmount decimal.Decimal
	Status         DiscountStatus
	ErrorMessage   string
	CreatedAt      time.Time
	AppliedAt      *time.Time
	ExpiresAt      time.Time
}

// DiscountEvent - запись журнала переходов статусов скидки
type DiscountEvent struct {
	ID         int64
	DiscountID int64
	FromStatus DiscountStatus
	ToStatus   DiscountStatus
	Detail     string
	CreatedAt  time.Time
}

// DiscountRequest - модель запроса списания баллов от кассира
type DiscountRequest struct {
	TransactionID int64   `json:"transaction_id"`
	Points        float64 `json:"points"`
}

// DiscountResponse - модель отложенной скидки для выдачи
type DiscountResponse struct {
	ID        int64   `json:"id"`
	StoreID   int64   `json:"store_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Error     string  `json:"error,omitempty"`
	CreatedAt string  `json:"created_at"`
	ExpiresAt string  `json:"expires_at"`
}

// ConfirmRequest - модель подтверждения исхода от агента 1С
type ConfirmRequest struct {
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

// NewDiscountResponse собирает модель выдачи из модели хранилища
func NewDiscountResponse(d *PendingDiscount) DiscountResponse {
	amount, _ := d.DiscountAmount.Float64()
	return DiscountResponse{
		ID:        d.ID,
		StoreID:   d.StoreID,
		Amount:    amount,
		Status:    string(d.Status),
		Error:     d.ErrorMessage,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
		ExpiresAt: d.ExpiresAt.Format(time.RFC3339),
	}
}
