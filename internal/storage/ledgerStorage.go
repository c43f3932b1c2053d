package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lavkaplus/loyalty/internal/logger"
	"github.com/lavkaplus/loyalty/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	GetAccountByID         = `SELECT id, card_number, balance, created_at FROM ACCOUNTS WHERE id=$1;`
	GetAccountByCardNumber = `SELECT id, card_number, balance, created_at FROM ACCOUNTS WHERE card_number=$1;`

	// списание проходит только при достаточном балансе, проверка и
	// декремент в одном операторе
	DebitBalance = `UPDATE ACCOUNTS SET balance = balance - $1
					WHERE id = $2 AND balance >= $1
					RETURNING balance;`
	CreditBalance = `UPDATE ACCOUNTS SET balance = balance + $1
					 WHERE id = $2
					 RETURNING balance;`
	CheckAccountExists = `SELECT EXISTS(SELECT 1 FROM ACCOUNTS WHERE id=$1);`

	// сумма чека берётся из исходной покупки
	InsertRedemption = `INSERT INTO TRANSACTIONS (account_id, store_id, type, points_amount, purchase_amount, discount_id, unreconciled)
						SELECT $1, $2, 'redeem', $3, COALESCE(t.purchase_amount, 0), $4, $5
						FROM TRANSACTIONS t WHERE t.id = $6
						RETURNING id;`
	InsertEarn = `INSERT INTO TRANSACTIONS (account_id, store_id, type, points_amount, purchase_amount)
				  VALUES ($1, $2, 'earn', $3, $4)
				  RETURNING id;`

	CheckRedemptionExists = `SELECT EXISTS(SELECT 1 FROM TRANSACTIONS WHERE discount_id=$1 AND type='redeem');`

	GetTransactionByID = `SELECT id, account_id, store_id, type, points_amount, purchase_amount, discount_id, unreconciled, created_at
						  FROM TRANSACTIONS WHERE id=$1;`
)

type LedgerDatabase struct {
	DB *Database
}

// Создание хранилища
func NewLedgerStorage(db *Database) LedgerStorage {
	return &LedgerDatabase{DB: db}
}

func (s *LedgerDatabase) GetAccount(ctx context.Context, accountID string) (*models.AccountData, error) {
	return s.getAccount(ctx, GetAccountByID, accountID)
}

func (s *LedgerDatabase) GetAccountByCard(ctx context.Context, cardNumber string) (*models.AccountData, error) {
	return s.getAccount(ctx, GetAccountByCardNumber, cardNumber)
}

func (s *LedgerDatabase) getAccount(ctx context.Context, query string, key string) (*models.AccountData, error) {
	var (
		id         string
		cardNumber string
		balance    decimal.Decimal
		createdAt  time.Time
	)
	err := s.DB.Pool.QueryRow(ctx, query, key).Scan(&id, &cardNumber, &balance, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &models.AccountData{
		ID:         id,
		CardNumber: cardNumber,
		Balance:    balance,
		CreatedAt:  createdAt,
	}, nil
}

// ApplyRedemption - списание баллов, запись операции в журнал и перевод скидки
// processing -> applied одной транзакцией: статус и баланс фиксируются вместе
// или откатываются вместе. Баланс перепроверяется здесь, а не только при
// создании скидки: между запросом и подтверждением баллы могли потратить.
func (s *LedgerDatabase) ApplyRedemption(ctx context.Context, redemption models.RedemptionData) (decimal.Decimal, error) {
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("ApplyRedemption. Rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	// 1. Уменьшаем баланс, только если средств достаточно
	var balance decimal.Decimal
	err = tx.QueryRow(ctx, DebitBalance, redemption.Amount, redemption.AccountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// различаем отсутствие счёта и нехватку баллов
			var exists bool
			if checkErr := s.DB.Pool.QueryRow(ctx, CheckAccountExists, redemption.AccountID).Scan(&exists); checkErr != nil {
				return decimal.Zero, fmt.Errorf("failed to check account: %w", checkErr)
			}
			if !exists {
				return decimal.Zero, ErrAccountNotFound
			}
			return decimal.Zero, ErrInsufficientBalance
		}
		return decimal.Zero, fmt.Errorf("update balance: %w", err)
	}

	// 2. Добавляем запись о списании
	var transactionID int64
	err = tx.QueryRow(
		ctx,
		InsertRedemption,
		redemption.AccountID,
		redemption.StoreID,
		redemption.Amount,
		redemption.DiscountID,
		redemption.Unreconciled,
		redemption.PurchaseID,
	).Scan(&transactionID)
	if err != nil {
		// уникальный индекс по discount_id: списание по этой скидке уже записано
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return decimal.Zero, ErrAlreadyExists
		}
		return decimal.Zero, fmt.Errorf("insert redemption: %w", err)
	}

	// 3. Переводим скидку в applied тем же коммитом. Проигранный CAS означает,
	// что скидку успели завершить (например, просрочила фоновая очистка) -
	// откат по defer убирает и списание, и запись журнала
	var tag pgconn.CommandTag
	tag, err = tx.Exec(ctx, UpdateApplied, redemption.DiscountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to update discount status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = fmt.Errorf("%w: discount is no longer processing", ErrConflict)
		return decimal.Zero, err
	}

	_, err = tx.Exec(ctx, InsertDiscountEvent, redemption.DiscountID, models.DiscountStatusProcessing, models.DiscountStatusApplied, "")
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to log discount event: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("ApplyRedemption. Commit failed: %w", err)
	}
	return balance, nil
}

// ApplyEarn - начисление баллов за покупку и запись операции одной транзакцией
func (s *LedgerDatabase) ApplyEarn(ctx context.Context, accountID string, storeID int64, purchaseAmount decimal.Decimal, earnedPoints decimal.Decimal) (int64, decimal.Decimal, error) {
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("ApplyEarn. Rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	var balance decimal.Decimal
	err = tx.QueryRow(ctx, CreditBalance, earnedPoints, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, decimal.Zero, ErrAccountNotFound
		}
		return 0, decimal.Zero, fmt.Errorf("update balance: %w", err)
	}

	var transactionID int64
	err = tx.QueryRow(ctx, InsertEarn, accountID, storeID, earnedPoints, purchaseAmount).Scan(&transactionID)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("insert earn: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, decimal.Zero, fmt.Errorf("ApplyEarn. Commit failed: %w", err)
	}
	return transactionID, balance, nil
}

// RedemptionExists - проверка, записано ли списание по скидке.
// Используется фоновой очисткой как защита от просрочки уже оплаченной скидки.
func (s *LedgerDatabase) RedemptionExists(ctx context.Context, discountID int64) (bool, error) {
	var exists bool
	err := s.DB.Pool.QueryRow(ctx, CheckRedemptionExists, discountID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check redemption: %w", err)
	}
	return exists, nil
}

func (s *LedgerDatabase) GetTransaction(ctx context.Context, id int64) (*models.TransactionData, error) {
	var (
		transaction models.TransactionData
		discountID  *int64
	)
	err := s.DB.Pool.QueryRow(ctx, GetTransactionByID, id).Scan(
		&transaction.ID,
		&transaction.AccountID,
		&transaction.StoreID,
		&transaction.Type,
		&transaction.PointsAmount,
		&transaction.PurchaseAmount,
		&discountID,
		&transaction.Unreconciled,
		&transaction.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	transaction.DiscountID = discountID
	return &transaction, nil
}
