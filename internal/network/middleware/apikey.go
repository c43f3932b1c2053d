package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/lavkaplus/loyalty/internal/logger"
	"github.com/lavkaplus/loyalty/internal/models"
	"github.com/lavkaplus/loyalty/internal/storage"
)

// HeaderAPIKey - заголовок с ключом магазина для запросов агента 1С
const HeaderAPIKey = "X-Api-Key"

type contextKey string

const storeContextKey contextKey = "terminal-store"

// StoreAuth — аутентификация агента 1С по ключу магазина из заголовка.
// Найденный магазин кладётся в контекст запроса.
func StoreAuth(stores storage.StoresStorage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderAPIKey)
			if key == "" {
				http.Error(w, "Missing API key", http.StatusUnauthorized)
				return
			}

			store, err := stores.GetStoreByAPIKey(r.Context(), key)
			if err != nil {
				if errors.Is(err, storage.ErrStoreNotFound) {
					http.Error(w, "Unknown API key", http.StatusUnauthorized)
					return
				}
				logger.Error("Failed to authenticate store agent:", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), storeContextKey, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StoreFromContext - извлекает магазин, положенный StoreAuth
func StoreFromContext(ctx context.Context) (*models.StoreData, bool) {
	store, ok := ctx.Value(storeContextKey).(*models.StoreData)
	return store, ok
}
