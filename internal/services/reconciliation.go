package services

import (
	"context"
	"errors"
	"time"

	"github.com/lavkaplus/loyalty/internal/client"
	"github.com/lavkaplus/loyalty/internal/config"
	"github.com/lavkaplus/loyalty/internal/logger"
	"github.com/lavkaplus/loyalty/internal/metrics"
	"github.com/lavkaplus/loyalty/internal/models"
	"github.com/lavkaplus/loyalty/internal/storage"
	"github.com/lavkaplus/loyalty/internal/validators"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var (
	ErrInvalidCardNumber     = errors.New("invalid card number")
	ErrInvalidPurchaseAmount = errors.New("invalid purchase amount")
	ErrInvalidDiscountAmount = errors.New("invalid discount amount")
	ErrDiscountTooLarge      = errors.New("discount exceeds allowed part of the purchase")
	ErrInvalidOrigin         = errors.New("invalid originating transaction")
	ErrInvalidOutcome        = errors.New("unknown confirmation outcome")
	ErrInvalidStatus         = errors.New("unknown discount status")
	ErrNoCheckAmount         = errors.New("no check amount registered")
)

// размер пачки скидок, отдаваемой агенту 1С за один опрос
const PollBatchSize = 100

type ReconciliationService interface {
	RegisterCheckAmount(storeID int64, amount decimal.Decimal, registeredAt time.Time)
	GetCheckAmount(storeID int64) (*models.CheckAmount, error)
	RegisterPurchase(ctx context.Context, storeID int64, cardNumber string, amount decimal.Decimal) (*models.PurchaseResponse, error)
	RequestDiscount(ctx context.Context, storeID int64, transactionID int64, points decimal.Decimal) (*models.PendingDiscount, error)
	PollPending(ctx context.Context, storeID int64) ([]models.PendingDiscount, error)
	Confirm(ctx context.Context, id int64, outcome string, errorMessage string) error
	ForceConfirm(ctx context.Context, id int64) error
	ListDiscounts(ctx context.Context, storeID int64, status models.DiscountStatus) ([]models.PendingDiscount, error)
}

// Reconciliation - оркестратор обмена между кассиром, бэкендом лояльности
// и кассовым терминалом 1С
type Reconciliation struct {
	Storage storage.Storage
	Agent   client.AgentService
	Checks  *CheckAmounts
	Breaker *gobreaker.CircuitBreaker
	Config  config.ReconcileConfig
}

// Создание сервиса
func NewReconciliation(store storage.Storage, agent client.AgentService, cfg config.ReconcileConfig) ReconciliationService {
	return &Reconciliation{
		Storage: store,
		Agent:   agent,
		Checks:  NewCheckAmounts(cfg.CheckAmountTTL),
		Breaker: InitAgentBreaker(),
		Config:  cfg,
	}
}

func InitAgentBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "store-agent",
		Timeout: 30 * time.Second, // через 30 сек пробуем подключиться
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// 5 попыток достучаться до агента
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Circuit Breaker '%s': %s → %s", name, from, to)
		},
	})
}

// RegisterCheckAmount - публикация суммы чека агентом 1С. Последняя запись
// по магазину побеждает, ничего не сохраняется на диск.
func (s *Reconciliation) RegisterCheckAmount(storeID int64, amount decimal.Decimal, registeredAt time.Time) {
	s.Checks.Register(storeID, amount, registeredAt)
}

// GetCheckAmount - чтение суммы чека кассиром. Если агент ничего не публиковал,
// кассир переходит на ручной ввод.
func (s *Reconciliation) GetCheckAmount(storeID int64) (*models.CheckAmount, error) {
	return s.Checks.Get(storeID)
}

// RegisterPurchase - регистрация покупки кассиром: начисление кэшбэка и
// создание исходной записи, на которую потом ссылается запрос скидки
func (s *Reconciliation) RegisterPurchase(ctx context.Context, storeID int64, cardNumber string, amount decimal.Decimal) (*models.PurchaseResponse, error) {
	if !validators.CheckNumber(cardNumber) {
		return nil, ErrInvalidCardNumber
	}
	if !amount.GreaterThan(decimal.Zero) {
		return nil, ErrInvalidPurchaseAmount
	}

	account, err := s.Storage.Ledger.GetAccountByCard(ctx, cardNumber)
	if err != nil {
		return nil, err
	}

	earned := amount.Mul(decimal.NewFromInt(int64(s.Config.CashbackPercent))).Div(decimal.NewFromInt(100)).Round(2)
	transactionID, balance, err := s.Storage.Ledger.ApplyEarn(ctx, account.ID, storeID, amount, earned)
	if err != nil {
		logger.Error("Failed to apply earn:", zap.Error(err))
		return nil, err
	}

	earnedFloat, _ := earned.Float64()
	balanceFloat, _ := balance.Float64()
	return &models.PurchaseResponse{
		TransactionID: transactionID,
		EarnedPoints:  earnedFloat,
		Balance:       balanceFloat,
	}, nil
}

// RequestDiscount - запрос списания баллов в счёт скидки на покупку.
// Баланс здесь только проверяется: списание произойдёт после подтверждения
// применения скидки кассой, чтобы не заморозить баллы при молчании 1С.
func (s *Reconciliation) RequestDiscount(ctx context.Context, storeID int64, transactionID int64, points decimal.Decimal) (*models.PendingDiscount, error) {
	if !points.GreaterThan(decimal.Zero) {
		return nil, ErrInvalidDiscountAmount
	}

	origin, err := s.Storage.Ledger.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if origin.Type != models.TransactionTypeEarn || origin.StoreID != storeID {
		return nil, ErrInvalidOrigin
	}

	account, err := s.Storage.Ledger.GetAccount(ctx, origin.AccountID)
	if err != nil {
		return nil, err
	}
	if account.Balance.LessThan(points) {
		return nil, storage.ErrInsufficientBalance
	}

	// скидка не может превышать настроенную долю чека
	ceiling := origin.PurchaseAmount.Mul(decimal.NewFromInt(int64(s.Config.MaxDiscountPercent))).Div(decimal.NewFromInt(100))
	if points.GreaterThan(ceiling) {
		return nil, ErrDiscountTooLarge
	}

	store, err := s.Storage.Stores.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	discount, err := s.Storage.Discounts.CreateDiscount(ctx, storeID, transactionID, account.ID, points, s.Config.DiscountTTL)
	if err != nil {
		return nil, err
	}
	metrics.DiscountsCreatedTotal.Inc()

	// доставляем скидку агенту в фоне; при неудаче её заберёт очередной опрос
	if store.AgentURL != "" {
		go s.notifyAgent(store.AgentURL, discount)
	}

	return discount, nil
}

// notifyAgent - push скидки агенту 1С под защитой предохранителя
func (s *Reconciliation) notifyAgent(agentURL string, discount *models.PendingDiscount) {
	if s.Breaker.State() == gobreaker.StateOpen {
		logger.Warn("%s unavailable. Waiting...", s.Breaker.Name())
		return
	}

	amount, _ := discount.DiscountAmount.Float64()
	_, err := s.Breaker.Execute(func() (interface{}, error) {
		return nil, s.Agent.NotifyDiscount(context.Background(), agentURL, client.DiscountNotice{
			ID:            discount.ID,
			TransactionID: discount.TransactionID,
			Amount:        amount,
			ExpiresAt:     discount.ExpiresAt.Format(time.RFC3339),
		})
	})
	if err != nil {
		metrics.AgentPushFailedTotal.Inc()
		logger.Warn("Failed to push discount to store agent:", zap.Error(err))
	}
}

// PollPending - опрос терминалом 1С: pending-скидки магазина атомарно
// переводятся в processing, каждую получает ровно один опрашивающий
func (s *Reconciliation) PollPending(ctx context.Context, storeID int64) ([]models.PendingDiscount, error) {
	return s.Storage.Discounts.ClaimPending(ctx, storeID, PollBatchSize)
}

// Confirm - подтверждение исхода применения скидки. Вызывается 1С, доставка
// не реже одного раза: повтор по уже завершённой скидке игнорируется,
// первый терминальный исход авторитетен.
func (s *Reconciliation) Confirm(ctx context.Context, id int64, outcome string, errorMessage string) error {
	start := time.Now()
	defer func() {
		metrics.ConfirmLatency.Observe(time.Since(start).Seconds())
	}()

	discount, err := s.Storage.Discounts.GetDiscount(ctx, id)
	if err != nil {
		return err
	}
	if discount.Status.Terminal() {
		logger.Info("Repeated confirm ignored", "discount", id, "status", discount.Status)
		return nil
	}

	switch outcome {
	case models.OutcomeApplied:
		return s.applyDiscount(ctx, discount, false)
	case models.OutcomeFailed:
		if err := s.Storage.Discounts.MarkFailed(ctx, id, errorMessage); err != nil {
			return err
		}
		metrics.DiscountsFailedTotal.WithLabelValues("terminal").Inc()
		return nil
	default:
		return ErrInvalidOutcome
	}
}

// ForceConfirm - ручное подтверждение кассиром при молчании 1С: скидка
// применяется к локальному балансу, операция помечается несверенной
func (s *Reconciliation) ForceConfirm(ctx context.Context, id int64) error {
	discount, err := s.Storage.Discounts.GetDiscount(ctx, id)
	if err != nil {
		return err
	}
	if discount.Status == models.DiscountStatusApplied {
		return nil
	}
	if discount.Status.Terminal() {
		return storage.ErrConflict
	}
	return s.applyDiscount(ctx, discount, true)
}

// applyDiscount - списание баллов по скидке. Списание, запись журнала и
// переход processing -> applied фиксируются одной транзакцией хранилища:
// просроченная скидка не оставляет следа на балансе, а применённая не может
// быть просрочена.
func (s *Reconciliation) applyDiscount(ctx context.Context, discount *models.PendingDiscount, forced bool) error {
	// подтверждение может прийти до опроса (push-доставка или ручное)
	if discount.Status == models.DiscountStatusPending {
		detail := "confirmed ahead of poll"
		if forced {
			detail = "force-confirmed by cashier"
		}
		if _, err := s.Storage.Discounts.MarkProcessing(ctx, discount.ID, detail); err != nil && !errors.Is(err, storage.ErrConflict) {
			return err
		}
	}

	_, err := s.Storage.Ledger.ApplyRedemption(ctx, models.RedemptionData{
		AccountID:    discount.AccountID,
		StoreID:      discount.StoreID,
		Amount:       discount.DiscountAmount,
		DiscountID:   discount.ID,
		PurchaseID:   discount.TransactionID,
		Unreconciled: forced,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			// списание и статус уже зафиксированы: повторная доставка
			return nil
		case errors.Is(err, storage.ErrInsufficientBalance):
			// баллы потратили между запросом и подтверждением
			if failErr := s.Storage.Discounts.MarkFailed(ctx, discount.ID, "insufficient balance at confirmation"); failErr != nil {
				logger.Error("Failed to mark discount failed:", zap.Error(failErr))
			}
			metrics.DiscountsFailedTotal.WithLabelValues("insufficient_balance").Inc()
			return storage.ErrInsufficientBalance
		case errors.Is(err, storage.ErrConflict):
			// скидку успели завершить параллельно, списание откатилось
			logger.Warn("Discount completed concurrently, debit rolled back", "discount", discount.ID)
			return err
		default:
			logger.Error("Failed to apply redemption:", zap.Error(err))
			return err
		}
	}

	if forced {
		metrics.DiscountsForcedTotal.Inc()
	} else {
		metrics.DiscountsAppliedTotal.Inc()
	}
	return nil
}

// ListDiscounts - история скидок магазина для аудита в админке
func (s *Reconciliation) ListDiscounts(ctx context.Context, storeID int64, status models.DiscountStatus) ([]models.PendingDiscount, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.Storage.Discounts.ListDiscounts(ctx, storeID, status)
}
