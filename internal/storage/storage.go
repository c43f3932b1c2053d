package storage

import (
	"context"
	"errors"
	"time"

	"github.com/lavkaplus/loyalty/internal/models"
	"github.com/shopspring/decimal"
)

type DiscountsStorage interface {
	CreateDiscount(ctx context.Context, storeID int64, transactionID int64, accountID string, amount decimal.Decimal, ttl time.Duration) (*models.PendingDiscount, error)
	GetDiscount(ctx context.Context, id int64) (*models.PendingDiscount, error)
	ListPending(ctx context.Context, storeID int64) ([]models.PendingDiscount, error)
	ClaimPending(ctx context.Context, storeID int64, limit int) ([]models.PendingDiscount, error)
	MarkProcessing(ctx context.Context, id int64, detail string) (*models.PendingDiscount, error)
	MarkApplied(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errorMessage string) error
	MarkExpired(ctx context.Context, id int64) error
	ListExpired(ctx context.Context, limit int) ([]models.PendingDiscount, error)
	ListDiscounts(ctx context.Context, storeID int64, status models.DiscountStatus) ([]models.PendingDiscount, error)
}

type LedgerStorage interface {
	GetAccount(ctx context.Context, accountID string) (*models.AccountData, error)
	GetAccountByCard(ctx context.Context, cardNumber string) (*models.AccountData, error)
	GetTransaction(ctx context.Context, id int64) (*models.TransactionData, error)
	// списание и перевод скидки processing -> applied одной транзакцией
	ApplyRedemption(ctx context.Context, redemption models.RedemptionData) (decimal.Decimal, error)
	ApplyEarn(ctx context.Context, accountID string, storeID int64, purchaseAmount decimal.Decimal, earnedPoints decimal.Decimal) (int64, decimal.Decimal, error)
	RedemptionExists(ctx context.Context, discountID int64) (bool, error)
}

type StoresStorage interface {
	GetStore(ctx context.Context, id int64) (*models.StoreData, error)
	GetStoreByAPIKey(ctx context.Context, apiKey string) (*models.StoreData, error)
}

type CashiersStorage interface {
	AddCashier(ctx context.Context, login string, passwordHash string, storeID int64) error
	GetCashier(ctx context.Context, login string) (*models.CashierData, error)
}

type Storage struct {
	Discounts DiscountsStorage
	Ledger    LedgerStorage
	Stores    StoresStorage
	Cashiers  CashiersStorage
}

// Создание хранилища
func NewStorage(db *Database) Storage {
	return Storage{
		Discounts: NewDiscountsStorage(db),
		Ledger:    NewLedgerStorage(db),
		Stores:    NewStoresStorage(db),
		Cashiers:  NewCashiersStorage(db),
	}
}

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrDiscountNotFound    = errors.New("discount not found")
	ErrStoreNotFound       = errors.New("store not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCashierNotFound     = errors.New("cashier not found")

	ErrAlreadyExists = errors.New("already exists")

	// недопустимый переход статуса или проигранная гонка за строку
	ErrConflict = errors.New("conflicting discount state")

	// баланс счёта меньше списываемой суммы на момент подтверждения
	ErrInsufficientBalance = errors.New("insufficient balance")
)
