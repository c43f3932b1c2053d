package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lavkaplus/loyalty/internal/client/mocks"
	"github.com/lavkaplus/loyalty/internal/config"
	"github.com/lavkaplus/loyalty/internal/logger"
	"github.com/lavkaplus/loyalty/internal/models"
	"github.com/lavkaplus/loyalty/internal/storage"
	storagemocks "github.com/lavkaplus/loyalty/internal/storage/mocks"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type reconcileMocks struct {
	Discounts *storagemocks.MockDiscountsStorage
	Ledger    *storagemocks.MockLedgerStorage
	Stores    *storagemocks.MockStoresStorage
	Agent     *mocks.MockAgentService
}

func newReconcileMocks(ctrl *gomock.Controller) (*reconcileMocks, ReconciliationService) {
	m := &reconcileMocks{
		Discounts: storagemocks.NewMockDiscountsStorage(ctrl),
		Ledger:    storagemocks.NewMockLedgerStorage(ctrl),
		Stores:    storagemocks.NewMockStoresStorage(ctrl),
		Agent:     mocks.NewMockAgentService(ctrl),
	}
	store := storage.Storage{
		Discounts: m.Discounts,
		Ledger:    m.Ledger,
		Stores:    m.Stores,
	}
	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}
	return m, NewReconciliation(store, m.Agent, config.Reconcile)
}

func TestReconciliation_RequestDiscount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m, reconcile := newReconcileMocks(ctrl)

	// покупка на 1000 в магазине 1, на счету 500 баллов
	origin := &models.TransactionData{
		ID:             7,
		AccountID:      "acc-1",
		StoreID:        1,
		Type:           models.TransactionTypeEarn,
		PurchaseAmount: decimal.NewFromInt(1000),
	}
	account := &models.AccountData{ID: "acc-1", Balance: decimal.NewFromInt(500)}
	// без AgentURL, чтобы не было фоновой доставки
	store := &models.StoreData{ID: 1, Name: "store"}

	testCases := []struct {
		TestName      string
		StoreID       int64
		Points        decimal.Decimal
		SetupMocks    func()
		ExpectedError error
	}{
		{
			TestName:      "Error. Non-positive points #1",
			StoreID:       1,
			Points:        decimal.Zero,
			SetupMocks:    func() {},
			ExpectedError: ErrInvalidDiscountAmount,
		},
		{
			TestName: "Error. Transaction not found #2",
			StoreID:  1,
			Points:   decimal.NewFromInt(100),
			SetupMocks: func() {
				m.Ledger.EXPECT().GetTransaction(gomock.Any(), int64(7)).Return(nil, storage.ErrTransactionNotFound)
			},
			ExpectedError: storage.ErrTransactionNotFound,
		},
		{
			TestName: "Error. Origin from another store #3",
			StoreID:  2,
			Points:   decimal.NewFromInt(100),
			SetupMocks: func() {
				m.Ledger.EXPECT().GetTransaction(gomock.Any(), int64(7)).Return(origin, nil)
			},
			ExpectedError: ErrInvalidOrigin,
		},
		{
			TestName: "Error. Origin is a redeem #4",
			StoreID:  1,
			Points:   decimal.NewFromInt(100),
			SetupMocks: func() {
				redeem := *origin
				redeem.Type = models.TransactionTypeRedeem
				m.Ledger.EXPECT().GetTransaction(gomock.Any(), int64(7)).Return(&redeem, nil)
			},
			ExpectedError: ErrInvalidOrigin,
		},
		{
			TestName: "Error. Insufficient balance #5",
			StoreID:  1,
			Points:   decimal.NewFromInt(501),
			SetupMocks: func() {
				m.Ledger.EXPECT().GetTransaction(gomock.Any(), int64(7)).Return(origin, nil)
				m.Ledger.EXPECT().GetAccount(gomock.Any(), "acc-1").Return(account, nil)
			},
			ExpectedError: storage.ErrInsufficientBalance,
		},
		{
			TestName: "Error. Discount above purchase ceiling #6",
			StoreID:  1,
			Points:   decimal.NewFromInt(400),
			SetupMocks: func() {
				// потолок 30% от 1000
				m.Ledger.EXPECT().GetTransaction(gomock.Any(), int64(7)).Return(origin, nil)
				m.Ledger.EXPECT().GetAccount(gomock.Any(), "acc-1").Return(account, nil)
			},
			ExpectedError: ErrDiscountTooLarge,
		},
		{
			TestName: "Success. Discount created #7",
			StoreID:  1,
			Points:   decimal.NewFromInt(300),
			SetupMocks: func() {
				m.Ledger.EXPECT().GetTransaction(gomock.Any(), int64(7)).Return(origin, nil)
				m.Ledger.EXPECT().GetAccount(gomock.Any(), "acc-1").Return(account, nil)
				m.Stores.EXPECT().GetStore(gomock.Any(), int64(1)).Return(store, nil)
				m.Discounts.EXPECT().CreateDiscount(gomock.Any(), int64(1), int64(7), "acc-1", decimal.NewFromInt(300), gomock.Any()).
					Return(&models.PendingDiscount{ID: 10, Status: models.DiscountStatusPending}, nil)
			},
			ExpectedError: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			_, err := reconcile.RequestDiscount(ctx, tc.StoreID, 7, tc.Points)

			if err != nil && tc.ExpectedError == nil {
				t.Errorf("Expected no error, got '%v'", err)
			} else if err == nil && tc.ExpectedError != nil {
				t.Errorf("Expected error, got none")
			} else if err != nil && !errors.Is(err, tc.ExpectedError) {
				t.Errorf("Expected error: '%v', got: '%v'", tc.ExpectedError, err)
			}
		})
	}
}

func TestReconciliation_Confirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m, reconcile := newReconcileMocks(ctrl)

	discount := models.PendingDiscount{
		ID:             10,
		StoreID:        1,
		TransactionID:  7,
		AccountID:      "acc-1",
		DiscountAmount: decimal.NewFromInt(300),
		Status:         models.DiscountStatusProcessing,
	}

	testCases := []struct {
		TestName      string
		Outcome       string
		SetupMocks    func()
		ExpectedError error
	}{
		{
			TestName: "Success. Applied: debit and status in one commit #1",
			Outcome:  models.OutcomeApplied,
			SetupMocks: func() {
				d := discount
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(&d, nil)
				m.Ledger.EXPECT().ApplyRedemption(gomock.Any(), models.RedemptionData{
					AccountID:  "acc-1",
					StoreID:    1,
					Amount:     decimal.NewFromInt(300),
					DiscountID: 10,
					PurchaseID: 7,
				}).Return(decimal.NewFromInt(200), nil)
			},
			ExpectedError: nil,
		},
		{
			TestName: "Success. Redelivered confirm after commit is a no-op #2",
			Outcome:  models.OutcomeApplied,
			SetupMocks: func() {
				d := discount
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(&d, nil)
				m.Ledger.EXPECT().ApplyRedemption(gomock.Any(), gomock.Any()).Return(decimal.Decimal{}, storage.ErrAlreadyExists)
			},
			ExpectedError: nil,
		},
		{
			TestName: "Success. Pending discount is promoted before debit #3",
			Outcome:  models.OutcomeApplied,
			SetupMocks: func() {
				d := discount
				d.Status = models.DiscountStatusPending
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(&d, nil)
				m.Discounts.EXPECT().MarkProcessing(gomock.Any(), int64(10), gomock.Any()).Return(&discount, nil)
				m.Ledger.EXPECT().ApplyRedemption(gomock.Any(), gomock.Any()).Return(decimal.NewFromInt(200), nil)
			},
			ExpectedError: nil,
		},
		{
			TestName: "Error. Balance spent before confirmation #4",
			Outcome:  models.OutcomeApplied,
			SetupMocks: func() {
				d := discount
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(&d, nil)
				m.Ledger.EXPECT().ApplyRedemption(gomock.Any(), gomock.Any()).Return(decimal.Decimal{}, storage.ErrInsufficientBalance)
				m.Discounts.EXPECT().MarkFailed(gomock.Any(), int64(10), "insufficient balance at confirmation").Return(nil)
			},
			ExpectedError: storage.ErrInsufficientBalance,
		},
		{
			TestName: "Success. Failed outcome terminalizes without debit #5",
			Outcome:  models.OutcomeFailed,
			SetupMocks: func() {
				d := discount
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(&d, nil)
				m.Discounts.EXPECT().MarkFailed(gomock.Any(), int64(10), "printer on fire").Return(nil)
			},
			ExpectedError: nil,
		},
		{
			TestName: "Success. Repeated confirm of a completed discount is ignored #6",
			Outcome:  models.OutcomeFailed,
			SetupMocks: func() {
				d := discount
				d.Status = models.DiscountStatusApplied
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(&d, nil)
			},
			ExpectedError: nil,
		},
		{
			TestName: "Error. Unknown outcome #7",
			Outcome:  "maybe",
			SetupMocks: func() {
				d := discount
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(&d, nil)
			},
			ExpectedError: ErrInvalidOutcome,
		},
		{
			TestName: "Error. Discount not found #8",
			Outcome:  models.OutcomeApplied,
			SetupMocks: func() {
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(nil, storage.ErrDiscountNotFound)
			},
			ExpectedError: storage.ErrDiscountNotFound,
		},
		{
			TestName: "Error. Expiry wins the race, debit rolled back #9",
			Outcome:  models.OutcomeApplied,
			SetupMocks: func() {
				// скидка просрочена между чтением статуса и списанием:
				// хранилище откатывает списание, повторных вызовов нет
				d := discount
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(&d, nil)
				m.Ledger.EXPECT().ApplyRedemption(gomock.Any(), gomock.Any()).Return(decimal.Decimal{}, storage.ErrConflict)
			},
			ExpectedError: storage.ErrConflict,
		},
		{
			TestName: "Success. Redelivered confirm after expiry is ignored #10",
			Outcome:  models.OutcomeApplied,
			SetupMocks: func() {
				d := discount
				d.Status = models.DiscountStatusExpired
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(&d, nil)
			},
			ExpectedError: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			err := reconcile.Confirm(ctx, 10, tc.Outcome, "printer on fire")

			if err != nil && tc.ExpectedError == nil {
				t.Errorf("Expected no error, got '%v'", err)
			} else if err == nil && tc.ExpectedError != nil {
				t.Errorf("Expected error, got none")
			} else if err != nil && !errors.Is(err, tc.ExpectedError) {
				t.Errorf("Expected error: '%v', got: '%v'", tc.ExpectedError, err)
			}
		})
	}
}

func TestReconciliation_ForceConfirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m, reconcile := newReconcileMocks(ctrl)

	discount := models.PendingDiscount{
		ID:             10,
		StoreID:        1,
		TransactionID:  7,
		AccountID:      "acc-1",
		DiscountAmount: decimal.NewFromInt(300),
		Status:         models.DiscountStatusPending,
	}

	testCases := []struct {
		TestName      string
		SetupMocks    func()
		ExpectedError error
	}{
		{
			TestName: "Success. Pending discount applied as unreconciled #1",
			SetupMocks: func() {
				d := discount
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(&d, nil)
				m.Discounts.EXPECT().MarkProcessing(gomock.Any(), int64(10), gomock.Any()).Return(&d, nil)
				m.Ledger.EXPECT().ApplyRedemption(gomock.Any(), models.RedemptionData{
					AccountID:    "acc-1",
					StoreID:      1,
					Amount:       decimal.NewFromInt(300),
					DiscountID:   10,
					PurchaseID:   7,
					Unreconciled: true,
				}).Return(decimal.NewFromInt(200), nil)
			},
			ExpectedError: nil,
		},
		{
			TestName: "Success. Already applied is a no-op #2",
			SetupMocks: func() {
				d := discount
				d.Status = models.DiscountStatusApplied
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(&d, nil)
			},
			ExpectedError: nil,
		},
		{
			TestName: "Error. Failed discount cannot be forced #3",
			SetupMocks: func() {
				d := discount
				d.Status = models.DiscountStatusFailed
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(&d, nil)
			},
			ExpectedError: storage.ErrConflict,
		},
		{
			TestName: "Error. Expired discount cannot be forced #4",
			SetupMocks: func() {
				d := discount
				d.Status = models.DiscountStatusExpired
				m.Discounts.EXPECT().GetDiscount(gomock.Any(), int64(10)).Return(&d, nil)
			},
			ExpectedError: storage.ErrConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			err := reconcile.ForceConfirm(ctx, 10)

			if err != nil && tc.ExpectedError == nil {
				t.Errorf("Expected no error, got '%v'", err)
			} else if err == nil && tc.ExpectedError != nil {
				t.Errorf("Expected error, got none")
			} else if err != nil && !errors.Is(err, tc.ExpectedError) {
				t.Errorf("Expected error: '%v', got: '%v'", tc.ExpectedError, err)
			}
		})
	}
}

func TestReconciliation_RegisterPurchase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m, reconcile := newReconcileMocks(ctrl)

	account := &models.AccountData{ID: "acc-1", CardNumber: "4561261212345467", Balance: decimal.NewFromInt(500)}

	testCases := []struct {
		TestName       string
		CardNumber     string
		Amount         decimal.Decimal
		SetupMocks     func()
		ExpectedError  error
		ExpectedEarned float64
	}{
		{
			TestName:      "Error. Card number fails Luhn #1",
			CardNumber:    "4561261212345464",
			Amount:        decimal.NewFromInt(1000),
			SetupMocks:    func() {},
			ExpectedError: ErrInvalidCardNumber,
		},
		{
			TestName:      "Error. Non-positive amount #2",
			CardNumber:    "4561261212345467",
			Amount:        decimal.Zero,
			SetupMocks:    func() {},
			ExpectedError: ErrInvalidPurchaseAmount,
		},
		{
			TestName:   "Error. Unknown card #3",
			CardNumber: "4561261212345467",
			Amount:     decimal.NewFromInt(1000),
			SetupMocks: func() {
				m.Ledger.EXPECT().GetAccountByCard(gomock.Any(), "4561261212345467").Return(nil, storage.ErrAccountNotFound)
			},
			ExpectedError: storage.ErrAccountNotFound,
		},
		{
			TestName:   "Success. Cashback credited #4",
			CardNumber: "4561261212345467",
			Amount:     decimal.NewFromInt(1000),
			SetupMocks: func() {
				// 5% от 1000
				earned := decimal.NewFromInt(1000).Mul(decimal.NewFromInt(5)).Div(decimal.NewFromInt(100)).Round(2)
				m.Ledger.EXPECT().GetAccountByCard(gomock.Any(), "4561261212345467").Return(account, nil)
				m.Ledger.EXPECT().ApplyEarn(gomock.Any(), "acc-1", int64(1), decimal.NewFromInt(1000), earned).
					Return(int64(7), decimal.NewFromInt(550), nil)
			},
			ExpectedError:  nil,
			ExpectedEarned: 50,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			purchase, err := reconcile.RegisterPurchase(ctx, 1, tc.CardNumber, tc.Amount)

			if err != nil && tc.ExpectedError == nil {
				t.Errorf("Expected no error, got '%v'", err)
			} else if err == nil && tc.ExpectedError != nil {
				t.Errorf("Expected error, got none")
			} else if err != nil && !errors.Is(err, tc.ExpectedError) {
				t.Errorf("Expected error: '%v', got: '%v'", tc.ExpectedError, err)
			}
			if err == nil && purchase.EarnedPoints != tc.ExpectedEarned {
				t.Errorf("Expected earned points %v, got %v", tc.ExpectedEarned, purchase.EarnedPoints)
			}
		})
	}
}

func TestReconciliation_PollPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m, reconcile := newReconcileMocks(ctrl)

	claimed := []models.PendingDiscount{
		{ID: 10, StoreID: 1, Status: models.DiscountStatusProcessing},
		{ID: 11, StoreID: 1, Status: models.DiscountStatusProcessing},
	}
	m.Discounts.EXPECT().ClaimPending(gomock.Any(), int64(1), PollBatchSize).Return(claimed, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	discounts, err := reconcile.PollPending(ctx, 1)
	if err != nil {
		t.Fatalf("Expected no error, got '%v'", err)
	}
	if len(discounts) != 2 {
		t.Errorf("Expected 2 claimed discounts, got %d", len(discounts))
	}
	for _, d := range discounts {
		if d.Status != models.DiscountStatusProcessing {
			t.Errorf("Expected claimed discount %d in processing, got %s", d.ID, d.Status)
		}
	}
}

func TestReconciliation_ListDiscounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m, reconcile := newReconcileMocks(ctrl)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := reconcile.ListDiscounts(ctx, 1, "sideways"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got '%v'", err)
	}

	m.Discounts.EXPECT().ListDiscounts(gomock.Any(), int64(1), models.DiscountStatusExpired).
		Return([]models.PendingDiscount{{ID: 10, Status: models.DiscountStatusExpired}}, nil)
	discounts, err := reconcile.ListDiscounts(ctx, 1, models.DiscountStatusExpired)
	if err != nil {
		t.Fatalf("Expected no error, got '%v'", err)
	}
	if len(discounts) != 1 {
		t.Errorf("Expected 1 discount, got %d", len(discounts))
	}
}
