package client

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// DiscountNotice - уведомление агента 1С о новой скидке
type DiscountNotice struct {
	ID            int64   `json:"id"`
	TransactionID int64   `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	ExpiresAt     string  `json:"expires_at"`
}

// AgentService - push-доставка скидок агенту 1С магазина
type AgentService interface {
	NotifyDiscount(ctx context.Context, agentURL string, notice DiscountNotice) error
}

var (
	ErrAgentUnavailable = errors.New("store agent unavailable")
	ErrAgentTimeout     = errors.New("store agent timed out")
)

type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}

func NewRateLimitError(headers http.Header) *RateLimitError {
	return &RateLimitError{
		RetryAfter: ParseRetryAfter(headers),
	}
}
