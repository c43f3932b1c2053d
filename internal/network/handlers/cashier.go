package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lavkaplus/loyalty/internal/helpers"
	"github.com/lavkaplus/loyalty/internal/logger"
	"github.com/lavkaplus/loyalty/internal/models"
	"github.com/lavkaplus/loyalty/internal/services"
	"github.com/lavkaplus/loyalty/internal/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LoginHandler — аутентификация кассира
func LoginHandler(i services.IdentityService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// получение данных о кассире
		var cashier models.CashierRequest
		if err := json.NewDecoder(r.Body).Decode(&cashier); err != nil {
			logger.Error("Failed to decode request", err)
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}
		// аутентификация в Identity
		data, err := i.AuthenticateCashier(r.Context(), cashier)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				logger.Warn("Authentication failed", cashier.Login)
				http.Error(w, "Invalid login/password", http.StatusUnauthorized)
				return
			}
			logger.Error("Error authenticate cashier", err)
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}
		// генерация токена с магазином кассира
		token, err := i.GenerateJWT(data.Login, data.StoreID)
		if err != nil {
			logger.Error("Failed to generate token", err)
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}

		// кассир прошел авторизацию
		logger.Info("Cashier authenticated", cashier.Login)
		w.Header().Set("Authorization", "Bearer "+token)
		w.WriteHeader(http.StatusOK)
	})
}

// GetCheckAmountHandler — чтение суммы текущего чека, опубликованной агентом 1С
func GetCheckAmountHandler(s services.ReconciliationService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storeID, err := helpers.GetCashierStore(r.Context())
		if err != nil {
			logger.Warn("Failed to get store from token:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		check, err := s.GetCheckAmount(storeID)
		if err != nil {
			// агент молчит или запись устарела, кассир вводит сумму вручную
			if errors.Is(err, services.ErrNoCheckAmount) {
				http.Error(w, "No check amount registered, enter manually", http.StatusNotFound)
				return
			}
			logger.Error("Failed to get check amount:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		amount, _ := check.Amount.Float64()
		response := models.CheckAmountResponse{
			Amount:       amount,
			RegisteredAt: check.RegisteredAt.Format(time.RFC3339),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// PurchaseHandler — регистрация покупки по карте лояльности
func PurchaseHandler(s services.ReconciliationService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storeID, err := helpers.GetCashierStore(r.Context())
		if err != nil {
			logger.Warn("Failed to get store from token:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		var req models.PurchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		purchase, err := s.RegisterPurchase(r.Context(), storeID, req.CardNumber, decimal.NewFromFloat(req.Amount))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCardNumber):
				http.Error(w, "Invalid card number format", http.StatusUnprocessableEntity)
			case errors.Is(err, services.ErrInvalidPurchaseAmount):
				http.Error(w, "Invalid purchase amount", http.StatusBadRequest)
			case errors.Is(err, storage.ErrAccountNotFound):
				http.Error(w, "Unknown loyalty card", http.StatusNotFound)
			default:
				logger.Error("Failed to register purchase:", zap.Error(err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(purchase); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// RequestDiscountHandler — запрос списания баллов в счёт скидки
func RequestDiscountHandler(s services.ReconciliationService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storeID, err := helpers.GetCashierStore(r.Context())
		if err != nil {
			logger.Warn("Failed to get store from token:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		var req models.DiscountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		discount, err := s.RequestDiscount(r.Context(), storeID, req.TransactionID, decimal.NewFromFloat(req.Points))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidDiscountAmount):
				http.Error(w, "Invalid discount amount", http.StatusBadRequest)
			case errors.Is(err, services.ErrInvalidOrigin):
				http.Error(w, "Invalid originating transaction", http.StatusUnprocessableEntity)
			case errors.Is(err, services.ErrDiscountTooLarge):
				http.Error(w, "Discount exceeds allowed part of the purchase", http.StatusUnprocessableEntity)
			case errors.Is(err, storage.ErrTransactionNotFound):
				http.Error(w, "Transaction not found", http.StatusNotFound)
			case errors.Is(err, storage.ErrInsufficientBalance):
				http.Error(w, "Insufficient balance", http.StatusPaymentRequired)
			default:
				logger.Error("Failed to request discount:", zap.Error(err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(models.NewDiscountResponse(discount)); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			return
		}
	})
}

// ForceConfirmHandler — ручное подтверждение скидки кассиром при молчании 1С
func ForceConfirmHandler(s services.ReconciliationService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid discount id", http.StatusBadRequest)
			return
		}

		if err := s.ForceConfirm(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, storage.ErrDiscountNotFound):
				http.Error(w, "Discount not found", http.StatusNotFound)
			case errors.Is(err, storage.ErrConflict):
				http.Error(w, "Discount already completed", http.StatusConflict)
			case errors.Is(err, storage.ErrInsufficientBalance):
				http.Error(w, "Insufficient balance", http.StatusPaymentRequired)
			default:
				logger.Error("Failed to force confirm discount:", zap.Error(err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}
