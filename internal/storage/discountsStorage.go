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
	discountColumns = `id, store_id, transaction_id, account_id, discount_amount, status,
						COALESCE(error_message, ''), created_at, applied_at, expires_at`

	InsertDiscount = `INSERT INTO PENDING_DISCOUNTS (store_id, transaction_id, account_id, discount_amount, status, expires_at)
						VALUES ($1, $2, $3, $4, 'pending', $5)
						RETURNING ` + discountColumns + `;`
	GetDiscountByID = `SELECT ` + discountColumns + ` FROM PENDING_DISCOUNTS WHERE id=$1;`

	// 1С разбирает скидки в порядке создания, старые первыми
	ListPendingDiscounts = `SELECT ` + discountColumns + ` FROM PENDING_DISCOUNTS
							WHERE store_id=$1 AND status IN ('pending', 'processing')
							ORDER BY created_at;`

	// атомарный захват pending-строк конкурирующими опросами 1С
	ClaimPendingDiscounts = `UPDATE PENDING_DISCOUNTS
							 SET status = 'processing'
							 WHERE id IN (
							     SELECT id FROM PENDING_DISCOUNTS
							     WHERE store_id = $1 AND status = 'pending'
							     ORDER BY created_at
							     LIMIT $2
							     FOR UPDATE SKIP LOCKED
							 )
							 RETURNING ` + discountColumns + `;`

	UpdateProcessing = `UPDATE PENDING_DISCOUNTS SET status='processing'
						WHERE id=$1 AND status='pending'
						RETURNING ` + discountColumns + `;`
	UpdateApplied = `UPDATE PENDING_DISCOUNTS SET status='applied', applied_at=NOW()
					 WHERE id=$1 AND status='processing';`
	UpdateFailed = `UPDATE PENDING_DISCOUNTS SET status='failed', error_message=$2
					WHERE id=$1 AND status='processing';`
	// CTE возвращает исходный статус для журнала переходов.
	// Скидка с уже записанным списанием не просрочивается.
	UpdateExpired = `WITH old AS (
						 SELECT d.id, d.status FROM PENDING_DISCOUNTS d
						 WHERE d.id=$1 AND d.status IN ('pending', 'processing')
						   AND NOT EXISTS (
						       SELECT 1 FROM TRANSACTIONS t
						       WHERE t.discount_id = d.id AND t.type = 'redeem'
						   )
						 FOR UPDATE
					 )
					 UPDATE PENDING_DISCOUNTS p
					 SET status='expired', error_message='discount expired'
					 FROM old WHERE p.id = old.id
					 RETURNING old.status;`
	GetDiscountStatus = `SELECT status FROM PENDING_DISCOUNTS WHERE id=$1;`

	ListExpiredDiscounts = `SELECT ` + discountColumns + ` FROM PENDING_DISCOUNTS
							WHERE status IN ('pending', 'processing') AND expires_at < NOW()
							ORDER BY expires_at
							LIMIT $1;`

	ListStoreDiscounts = `SELECT ` + discountColumns + ` FROM PENDING_DISCOUNTS
						  WHERE store_id=$1 AND ($2 = '' OR status=$2)
						  ORDER BY created_at DESC;`

	// журнал переходов, только добавление
	InsertDiscountEvent = `INSERT INTO DISCOUNT_EVENTS (discount_id, from_status, to_status, detail)
						   VALUES ($1, $2, $3, NULLIF($4, ''));`
)

type DiscountDatabase struct {
	DB *Database
}

// Создание хранилища
func NewDiscountsStorage(db *Database) DiscountsStorage {
	return &DiscountDatabase{DB: db}
}

func scanDiscount(row pgx.Row) (*models.PendingDiscount, error) {
	var (
		discount  models.PendingDiscount
		status    string
		appliedAt *time.Time
	)
	err := row.Scan(
		&discount.ID,
		&discount.StoreID,
		&discount.TransactionID,
		&discount.AccountID,
		&discount.DiscountAmount,
		&status,
		&discount.ErrorMessage,
		&discount.CreatedAt,
		&appliedAt,
		&discount.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	discount.Status = models.DiscountStatus(status)
	discount.AppliedAt = appliedAt
	return &discount, nil
}

// CreateDiscount - создание отложенной скидки в статусе pending
func (s *DiscountDatabase) CreateDiscount(ctx context.Context, storeID int64, transactionID int64, accountID string, amount decimal.Decimal, ttl time.Duration) (*models.PendingDiscount, error) {
	expiresAt := time.Now().Add(ttl)

	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("CreateDiscount. Rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	var discount *models.PendingDiscount
	discount, err = scanDiscount(tx.QueryRow(ctx, InsertDiscount, storeID, transactionID, accountID, amount, expiresAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert discount: %w", err)
	}

	// фиксируем создание в журнале переходов
	_, err = tx.Exec(ctx, InsertDiscountEvent, discount.ID, "", models.DiscountStatusPending, "")
	if err != nil {
		return nil, fmt.Errorf("failed to log discount event: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("CreateDiscount. Commit failed: %w", err)
	}
	return discount, nil
}

func (s *DiscountDatabase) GetDiscount(ctx context.Context, id int64) (*models.PendingDiscount, error) {
	discount, err := scanDiscount(s.DB.Pool.QueryRow(ctx, GetDiscountByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDiscountNotFound
		}
		return nil, fmt.Errorf("failed to get discount: %w", err)
	}
	return discount, nil
}

func (s *DiscountDatabase) ListPending(ctx context.Context, storeID int64) ([]models.PendingDiscount, error) {
	rows, err := s.DB.Pool.Query(ctx, ListPendingDiscounts, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending discounts: %w", err)
	}
	defer rows.Close()
	return collectDiscounts(rows)
}

// ClaimPending - атомарный перевод пачки pending-скидок магазина в processing.
// Из двух конкурирующих опросов каждую строку получает ровно один.
func (s *DiscountDatabase) ClaimPending(ctx context.Context, storeID int64, limit int) ([]models.PendingDiscount, error) {
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("ClaimPending. Rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	rows, err := tx.Query(ctx, ClaimPendingDiscounts, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending discounts: %w", err)
	}
	discounts, err := collectDiscounts(rows)
	if err != nil {
		return nil, err
	}

	for _, discount := range discounts {
		_, err = tx.Exec(ctx, InsertDiscountEvent, discount.ID, models.DiscountStatusPending, models.DiscountStatusProcessing, "claimed by terminal poll")
		if err != nil {
			return nil, fmt.Errorf("failed to log discount event: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ClaimPending. Commit failed: %w", err)
	}
	return discounts, nil
}

// MarkProcessing - перевод pending -> processing для одной скидки, минуя опрос.
// Причина перехода сохраняется в журнале.
func (s *DiscountDatabase) MarkProcessing(ctx context.Context, id int64, detail string) (*models.PendingDiscount, error) {
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("MarkProcessing. Rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	var discount *models.PendingDiscount
	discount, err = scanDiscount(tx.QueryRow(ctx, UpdateProcessing, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// строки нет либо статус уже не pending
			var current string
			if scanErr := s.DB.Pool.QueryRow(ctx, GetDiscountStatus, id).Scan(&current); scanErr != nil {
				if errors.Is(scanErr, pgx.ErrNoRows) {
					return nil, ErrDiscountNotFound
				}
				return nil, fmt.Errorf("failed to get discount status: %w", scanErr)
			}
			return nil, fmt.Errorf("%w: %s -> %s", ErrConflict, current, models.DiscountStatusProcessing)
		}
		return nil, fmt.Errorf("failed to mark discount processing: %w", err)
	}

	_, err = tx.Exec(ctx, InsertDiscountEvent, id, models.DiscountStatusPending, models.DiscountStatusProcessing, detail)
	if err != nil {
		return nil, fmt.Errorf("failed to log discount event: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("MarkProcessing. Commit failed: %w", err)
	}
	return discount, nil
}

// MarkApplied - перевод processing -> applied. Повторный вызов по уже применённой
// скидке не считается ошибкой (доставка от 1С не реже одного раза).
func (s *DiscountDatabase) MarkApplied(ctx context.Context, id int64) error {
	return s.terminalize(ctx, id, models.DiscountStatusApplied, UpdateApplied, "")
}

// MarkFailed - перевод processing -> failed, причина сохраняется в error_message
func (s *DiscountDatabase) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	return s.terminalize(ctx, id, models.DiscountStatusFailed, UpdateFailed, errorMessage)
}

// MarkExpired - перевод pending|processing -> expired, используется только фоновой очисткой
func (s *DiscountDatabase) MarkExpired(ctx context.Context, id int64) error {
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("MarkExpired. Rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	var from string
	err = tx.QueryRow(ctx, UpdateExpired, id).Scan(&from)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.resolveMissed(ctx, id, models.DiscountStatusExpired)
		}
		return fmt.Errorf("failed to mark discount expired: %w", err)
	}

	_, err = tx.Exec(ctx, InsertDiscountEvent, id, from, models.DiscountStatusExpired, "expired by reaper")
	if err != nil {
		return fmt.Errorf("failed to log discount event: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("MarkExpired. Commit failed: %w", err)
	}
	return nil
}

// terminalize - CAS-переход в терминальный статус с записью в журнал.
// Нулевое число затронутых строк разбирается по текущему статусу:
// целевой статус уже стоит - no-op, иначе конфликт.
func (s *DiscountDatabase) terminalize(ctx context.Context, id int64, target models.DiscountStatus, query string, errorMessage string) error {
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("terminalize. Rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	var tag pgconn.CommandTag
	if target == models.DiscountStatusFailed {
		tag, err = tx.Exec(ctx, query, id, errorMessage)
	} else {
		tag, err = tx.Exec(ctx, query, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update discount status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// CAS не сработал: транзакция ничего не изменила, откатываем
		// через defer и разбираем текущий статус
		err = ErrConflict
		return s.resolveMissed(ctx, id, target)
	}

	// CAS гарантирует, что исходный статус был processing
	_, err = tx.Exec(ctx, InsertDiscountEvent, id, models.DiscountStatusProcessing, target, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to log discount event: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("terminalize. Commit failed: %w", err)
	}
	return nil
}

// resolveMissed - разбор проигранного CAS: no-op для повторного перехода
// в тот же терминальный статус, иначе конфликт или отсутствие строки
func (s *DiscountDatabase) resolveMissed(ctx context.Context, id int64, target models.DiscountStatus) error {
	var current string
	err := s.DB.Pool.QueryRow(ctx, GetDiscountStatus, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDiscountNotFound
		}
		return fmt.Errorf("failed to get discount status: %w", err)
	}
	if models.DiscountStatus(current) == target {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrConflict, current, target)
}

func (s *DiscountDatabase) ListExpired(ctx context.Context, limit int) ([]models.PendingDiscount, error) {
	rows, err := s.DB.Pool.Query(ctx, ListExpiredDiscounts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get expired discounts: %w", err)
	}
	defer rows.Close()
	return collectDiscounts(rows)
}

func (s *DiscountDatabase) ListDiscounts(ctx context.Context, storeID int64, status models.DiscountStatus) ([]models.PendingDiscount, error) {
	rows, err := s.DB.Pool.Query(ctx, ListStoreDiscounts, storeID, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to get store discounts: %w", err)
	}
	defer rows.Close()
	return collectDiscounts(rows)
}

func collectDiscounts(rows pgx.Rows) ([]models.PendingDiscount, error) {
	var discounts []models.PendingDiscount
	for rows.Next() {
		discount, err := scanDiscount(rows)
		if err != nil {
			return discounts, fmt.Errorf("failed scan discount data: %w", err)
		}
		discounts = append(discounts, *discount)
	}
	return discounts, rows.Err()
}
