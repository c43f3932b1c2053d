package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lavkaplus/loyalty/internal/client"
	"github.com/lavkaplus/loyalty/internal/logger"
)

// Agent - push-доставка скидок агенту 1С с ограничением частоты и таймаутом
type Agent struct {
	Client  *client.Client
	Limiter *client.RateLimiter
	Timeout time.Duration
}

func NewAgentService(timeout time.Duration) client.AgentService {
	return &Agent{
		Client:  client.NewClient(&http.Client{}),
		Limiter: client.NewRateLimiter(),
		Timeout: timeout,
	}
}

func (s *Agent) NotifyDiscount(ctx context.Context, agentURL string, notice client.DiscountNotice) error {
	if err := s.Limiter.Wait(ctx); err != nil {
		return err
	}

	// одна попытка с коротким таймаутом, повторов нет
	pushCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	err := s.Client.PushDiscount(pushCtx, agentURL, notice)
	if err == nil {
		return nil
	}

	// проверка большого количества запросов
	var rateLimitErr *client.RateLimitError
	if errors.As(err, &rateLimitErr) {
		logger.Warn("Too many requests to store agent:", agentURL)
		s.Limiter.BlockFor(rateLimitErr.RetryAfter)
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return client.ErrAgentTimeout
	}
	return err
}
