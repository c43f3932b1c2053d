package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lavkaplus/loyalty/internal/config"
	"github.com/lavkaplus/loyalty/internal/logger"
	"github.com/lavkaplus/loyalty/internal/models"
	"github.com/lavkaplus/loyalty/internal/storage"
	"github.com/lavkaplus/loyalty/internal/storage/mocks"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newReaperMocks(t *testing.T) (*mocks.MockDiscountsStorage, *mocks.MockLedgerStorage, *ExpiryReaper) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	discounts := mocks.NewMockDiscountsStorage(ctrl)
	ledger := mocks.NewMockLedgerStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	return discounts, ledger, NewExpiryReaper(discounts, ledger, config.Reconcile.ReaperInterval)
}

func expired(id int64, status models.DiscountStatus) models.PendingDiscount {
	return models.PendingDiscount{
		ID:             id,
		StoreID:        1,
		TransactionID:  7,
		AccountID:      "acc-1",
		DiscountAmount: decimal.NewFromInt(300),
		Status:         status,
		ExpiresAt:      time.Now().Add(-time.Minute),
	}
}

func TestExpiryReaper_Sweep(t *testing.T) {
	t.Run("Success. Pending discount is expired #1", func(t *testing.T) {
		discounts, _, reaper := newReaperMocks(t)

		discounts.EXPECT().ListExpired(gomock.Any(), reaper.BatchSize).
			Return([]models.PendingDiscount{expired(10, models.DiscountStatusPending)}, nil)
		discounts.EXPECT().MarkExpired(gomock.Any(), int64(10)).Return(nil)

		reaper.Sweep(context.Background())
	})

	t.Run("Success. Debited processing discount completes as applied #2", func(t *testing.T) {
		discounts, ledger, reaper := newReaperMocks(t)

		discounts.EXPECT().ListExpired(gomock.Any(), reaper.BatchSize).
			Return([]models.PendingDiscount{expired(10, models.DiscountStatusProcessing)}, nil)
		ledger.EXPECT().RedemptionExists(gomock.Any(), int64(10)).Return(true, nil)
		discounts.EXPECT().MarkApplied(gomock.Any(), int64(10)).Return(nil)

		reaper.Sweep(context.Background())
	})

	t.Run("Success. Undebited processing discount is expired #3", func(t *testing.T) {
		discounts, ledger, reaper := newReaperMocks(t)

		discounts.EXPECT().ListExpired(gomock.Any(), reaper.BatchSize).
			Return([]models.PendingDiscount{expired(10, models.DiscountStatusProcessing)}, nil)
		ledger.EXPECT().RedemptionExists(gomock.Any(), int64(10)).Return(false, nil)
		discounts.EXPECT().MarkExpired(gomock.Any(), int64(10)).Return(nil)

		reaper.Sweep(context.Background())
	})

	t.Run("Success. Row confirmed during sweep is skipped #4", func(t *testing.T) {
		discounts, _, reaper := newReaperMocks(t)

		discounts.EXPECT().ListExpired(gomock.Any(), reaper.BatchSize).
			Return([]models.PendingDiscount{expired(10, models.DiscountStatusPending)}, nil)
		discounts.EXPECT().MarkExpired(gomock.Any(), int64(10)).Return(storage.ErrConflict)

		reaper.Sweep(context.Background())
	})

	t.Run("Success. One bad row does not stop the sweep #5", func(t *testing.T) {
		discounts, _, reaper := newReaperMocks(t)

		discounts.EXPECT().ListExpired(gomock.Any(), reaper.BatchSize).
			Return([]models.PendingDiscount{
				expired(10, models.DiscountStatusPending),
				expired(11, models.DiscountStatusPending),
			}, nil)
		discounts.EXPECT().MarkExpired(gomock.Any(), int64(10)).Return(errors.New("connection reset"))
		discounts.EXPECT().MarkExpired(gomock.Any(), int64(11)).Return(nil)

		reaper.Sweep(context.Background())
	})

	t.Run("Success. List failure aborts the pass #6", func(t *testing.T) {
		discounts, _, reaper := newReaperMocks(t)

		discounts.EXPECT().ListExpired(gomock.Any(), reaper.BatchSize).
			Return(nil, errors.New("connection reset"))

		reaper.Sweep(context.Background())
	})
}

func TestExpiryReaper_StartStop(t *testing.T) {
	discounts, _, reaper := newReaperMocks(t)
	reaper.Interval = 10 * time.Millisecond

	swept := make(chan struct{})
	discounts.EXPECT().ListExpired(gomock.Any(), reaper.BatchSize).
		DoAndReturn(func(ctx context.Context, limit int) ([]models.PendingDiscount, error) {
			select {
			case swept <- struct{}{}:
			default:
			}
			return nil, nil
		}).AnyTimes()

	reaper.Start(context.Background())

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("Expected at least one sweep")
	}
	reaper.Stop()
}
