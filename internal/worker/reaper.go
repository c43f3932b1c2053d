package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lavkaplus/loyalty/internal/logger"
	"github.com/lavkaplus/loyalty/internal/metrics"
	"github.com/lavkaplus/loyalty/internal/models"
	"github.com/lavkaplus/loyalty/internal/storage"
)

// ExpiryReaper - фоновая очистка: просроченные незавершённые скидки
// переводятся в expired, баланс при этом не меняется
type ExpiryReaper struct {
	Discounts storage.DiscountsStorage
	Ledger    storage.LedgerStorage
	WaitGroup sync.WaitGroup
	QuitChan  chan struct{}
	BatchSize int
	Interval  time.Duration
}

// NewExpiryReaper - конструктор фоновой очистки просроченных скидок
func NewExpiryReaper(discounts storage.DiscountsStorage, ledger storage.LedgerStorage, interval time.Duration) *ExpiryReaper {
	return &ExpiryReaper{
		Discounts: discounts,
		Ledger:    ledger,
		QuitChan:  make(chan struct{}),
		BatchSize: 100,
		Interval:  interval,
	}
}

// Start - запускает очистку в фоне
func (w *ExpiryReaper) Start(ctx context.Context) {
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает очистку
func (w *ExpiryReaper) Stop() {
	close(w.QuitChan)
	w.WaitGroup.Wait()
}

// Run - основная рабочая логика
func (w *ExpiryReaper) Run(ctx context.Context) {
	defer w.WaitGroup.Done()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("ExpiryReaper signal stop")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep - обработка пачки просроченных скидок. Ошибка по одной строке
// не останавливает проход: логируем и идём дальше.
func (w *ExpiryReaper) Sweep(ctx context.Context) {
	discounts, err := w.Discounts.ListExpired(ctx, w.BatchSize)
	if err != nil {
		logger.Error("error get expired discounts", err)
		return
	}

	for i := range discounts {
		if err := w.reap(ctx, &discounts[i]); err != nil {
			logger.Error("Error reaping discount", discounts[i].ID, err)
		}
	}
}

// reap - просрочка одной скидки. Списание фиксируется одной транзакцией со
// статусом applied, поэтому processing-строка со списанием в журнале - аномалия;
// такую строку доводим до applied, а не просрочиваем.
func (w *ExpiryReaper) reap(ctx context.Context, discount *models.PendingDiscount) error {
	if discount.Status == models.DiscountStatusProcessing {
		exists, err := w.Ledger.RedemptionExists(ctx, discount.ID)
		if err != nil {
			return err
		}
		if exists {
			logger.Warn("Expired discount already debited, completing as applied", "discount", discount.ID)
			return w.Discounts.MarkApplied(ctx, discount.ID)
		}
	}

	err := w.Discounts.MarkExpired(ctx, discount.ID)
	if err != nil {
		// скидку успели подтвердить между выборкой и просрочкой - не ошибка
		if errors.Is(err, storage.ErrConflict) || errors.Is(err, storage.ErrDiscountNotFound) {
			return nil
		}
		return err
	}
	metrics.DiscountsExpiredTotal.Inc()
	return nil
}
