package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lavkaplus/loyalty/internal/logger"
	"github.com/lavkaplus/loyalty/internal/models"
	"github.com/lavkaplus/loyalty/internal/services"
	"go.uber.org/zap"
)

// StoreDiscountsHandler — история скидок магазина, опционально по статусу
func StoreDiscountsHandler(s services.ReconciliationService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storeID, err := strconv.ParseInt(chi.URLParam(r, "storeID"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid store id", http.StatusBadRequest)
			return
		}
		status := models.DiscountStatus(r.URL.Query().Get("status"))

		discounts, err := s.ListDiscounts(r.Context(), storeID, status)
		if err != nil {
			if errors.Is(err, services.ErrInvalidStatus) {
				http.Error(w, "Unknown discount status", http.StatusBadRequest)
				return
			}
			logger.Error("Failed to list discounts:", zap.Error(err))
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

// RegisterCashierHandler — заведение кассира для магазина
func RegisterCashierHandler(i services.IdentityService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storeID, err := strconv.ParseInt(chi.URLParam(r, "storeID"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid store id", http.StatusBadRequest)
			return
		}
		var cashier models.CashierRequest
		if err := json.NewDecoder(r.Body).Decode(&cashier); err != nil {
			logger.Error("Failed to decode request", err)
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}
		if cashier.Login == "" || cashier.Password == "" {
			http.Error(w, "Login and password required", http.StatusBadRequest)
			return
		}

		if err := i.RegisterCashier(r.Context(), cashier, storeID); err != nil {
			if errors.Is(err, services.ErrCashierAlreadyExists) {
				logger.Warn("Error register cashier", cashier.Login)
				http.Error(w, "login already exist", http.StatusConflict)
				return
			}
			logger.Error("Error register cashier", err)
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
}
