package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lavkaplus/loyalty/internal/logger"
	"github.com/lavkaplus/loyalty/internal/models"
	"github.com/lavkaplus/loyalty/internal/network/middleware"
	"github.com/lavkaplus/loyalty/internal/services"
	"github.com/lavkaplus/loyalty/internal/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RegisterCheckHandler — публикация суммы текущего чека агентом 1С
func RegisterCheckHandler(s services.ReconciliationService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store, ok := middleware.StoreFromContext(r.Context())
		if !ok {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		var req models.CheckAmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}
		if req.Amount <= 0 {
			http.Error(w, "Invalid check amount", http.StatusBadRequest)
			return
		}

		s.RegisterCheckAmount(store.ID, decimal.NewFromFloat(req.Amount), time.Now())
		w.WriteHeader(http.StatusOK)
	})
}

// PollDiscountsHandler — опрос ожидающих скидок терминалом 1С.
// Каждая отданная скидка переходит в processing и повторно не выдаётся.
func PollDiscountsHandler(s services.ReconciliationService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store, ok := middleware.StoreFromContext(r.Context())
		if !ok {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		discounts, err := s.PollPending(r.Context(), store.ID)
		if err != nil {
			logger.Error("Failed to poll pending discounts:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		if len(discounts) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		var response []models.DiscountResponse
		for i := range discounts {
			response = append(response, models.NewDiscountResponse(&discounts[i]))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// ConfirmDiscountHandler — подтверждение исхода применения скидки кассой
func ConfirmDiscountHandler(s services.ReconciliationService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid discount id", http.StatusBadRequest)
			return
		}
		var req models.ConfirmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		if err := s.Confirm(r.Context(), id, req.Outcome, req.Error); err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidOutcome):
				http.Error(w, "Unknown confirmation outcome", http.StatusBadRequest)
			case errors.Is(err, storage.ErrDiscountNotFound):
				http.Error(w, "Discount not found", http.StatusNotFound)
			case errors.Is(err, storage.ErrConflict):
				http.Error(w, "Conflicting discount status", http.StatusConflict)
			case errors.Is(err, storage.ErrInsufficientBalance):
				http.Error(w, "Insufficient balance", http.StatusPaymentRequired)
			default:
				logger.Error("Failed to confirm discount:", zap.Error(err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}
