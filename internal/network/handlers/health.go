package handlers

import (
	"net/http"

	"github.com/lavkaplus/loyalty/internal/logger"
	"github.com/lavkaplus/loyalty/internal/storage"
	"go.uber.org/zap"
)

// PingHandler — проверка доступности БД
func PingHandler(db *storage.Database) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := db.Pool.Ping(r.Context()); err != nil {
			logger.Error("Database ping failed:", zap.Error(err))
			http.Error(w, "Database unavailable", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}
