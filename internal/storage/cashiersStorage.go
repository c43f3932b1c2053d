package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lavkaplus/loyalty/internal/models"
)

const (
	InsertCashier = `INSERT INTO CASHIERS (id, login, password, store_id)
						VALUES ($1, $2, $3, $4)
						ON CONFLICT (login) DO NOTHING
						RETURNING login;`
	GetCashierByLogin = `SELECT id, login, password, store_id FROM CASHIERS WHERE login=$1;`
)

type CashierDatabase struct {
	DB *Database
}

// Создание хранилища
func NewCashiersStorage(db *Database) CashiersStorage {
	return &CashierDatabase{DB: db}
}

func (s *CashierDatabase) GetCashier(ctx context.Context, login string) (*models.CashierData, error) {
	var (
		id       string
		dbLogin  string
		password string
		storeID  int64
	)
	err := s.DB.Pool.QueryRow(ctx, GetCashierByLogin, login).Scan(&id, &dbLogin, &password, &storeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCashierNotFound
		}
		return nil, fmt.Errorf("failed to get cashier: %w", err)
	}

	return &models.CashierData{
		ID:           id,
		Login:        dbLogin,
		PasswordHash: password,
		StoreID:      storeID,
	}, nil
}

func (s *CashierDatabase) AddCashier(ctx context.Context, login string, passwordHash string, storeID int64) error {
	var prevLogin string
	cashierID := uuid.New().String()

	err := s.DB.Pool.QueryRow(ctx, InsertCashier, cashierID, login, passwordHash, storeID).Scan(&prevLogin)

	// Успешное добавление
	if err == nil {
		return nil
	}

	// Проверяем именно нарушение уникальности (код 23505)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}
	if errors.Is(err, pgx.ErrNoRows) {
		// ON CONFLICT DO NOTHING не возвращает строку
		return ErrAlreadyExists
	}

	// Все остальные ошибки
	return fmt.Errorf("failed to add cashier: %w", err)
}
