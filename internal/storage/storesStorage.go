package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lavkaplus/loyalty/internal/models"
)

const (
	GetStoreByID  = `SELECT id, name, api_key, COALESCE(agent_url, ''), created_at FROM STORES WHERE id=$1;`
	GetStoreByKey = `SELECT id, name, api_key, COALESCE(agent_url, ''), created_at FROM STORES WHERE api_key=$1;`
)

type StoreDatabase struct {
	DB *Database
}

// Создание хранилища
func NewStoresStorage(db *Database) StoresStorage {
	return &StoreDatabase{DB: db}
}

func (s *StoreDatabase) GetStore(ctx context.Context, id int64) (*models.StoreData, error) {
	return s.getStore(ctx, GetStoreByID, id)
}

// GetStoreByAPIKey - поиск магазина по ключу из заголовка запроса агента 1С
func (s *StoreDatabase) GetStoreByAPIKey(ctx context.Context, apiKey string) (*models.StoreData, error) {
	return s.getStore(ctx, GetStoreByKey, apiKey)
}

func (s *StoreDatabase) getStore(ctx context.Context, query string, key interface{}) (*models.StoreData, error) {
	var (
		id        int64
		name      string
		storeKey  string
		agentURL  string
		createdAt time.Time
	)
	err := s.DB.Pool.QueryRow(ctx, query, key).Scan(&id, &name, &storeKey, &agentURL, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return &models.StoreData{
		ID:        id,
		Name:      name,
		APIKey:    storeKey,
		AgentURL:  agentURL,
		CreatedAt: createdAt,
	}, nil
}
