package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lavkaplus/loyalty/internal/config"
	"github.com/lavkaplus/loyalty/internal/logger"
	"github.com/lavkaplus/loyalty/internal/models"
	"github.com/lavkaplus/loyalty/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type IdentityService interface {
	RegisterCashier(ctx context.Context, cashier models.CashierRequest, storeID int64) error
	AuthenticateCashier(ctx context.Context, cashier models.CashierRequest) (*models.CashierData, error)
	GenerateJWT(login string, storeID int64) (string, error)
	GetTokenAuth() *jwtauth.JWTAuth
}

type Identity struct {
	JWTAuth  *jwtauth.JWTAuth
	Cashiers storage.CashiersStorage
}

var (
	ErrCashierAlreadyExists = errors.New("cashier already exists")
	ErrInvalidCredentials   = errors.New("invalid login or password")
)

const (
	TokenSecterAlgo     = "HS256"
	TokenExpirationTime = 12 * time.Hour
)

// Создание сервиса
func NewIdentity(cfg config.ServerConfig, cashiers storage.CashiersStorage) IdentityService {
	tokenAuth := jwtauth.New(TokenSecterAlgo, []byte(cfg.JWTSecret), nil)
	return &Identity{JWTAuth: tokenAuth, Cashiers: cashiers}
}

// Регистрация нового кассира магазина
func (i *Identity) RegisterCashier(ctx context.Context, cashier models.CashierRequest, storeID int64) error {
	logger.Info("Register cashier:", cashier.Login)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cashier.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Error generating password hash", err)
		return err
	}

	err = i.Cashiers.AddCashier(ctx, cashier.Login, string(hashedPassword), storeID)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			logger.Warn("Cashier already exist")
			return ErrCashierAlreadyExists
		}
		logger.Error("Error registering cashier", cashier.Login, err)
		return err
	}
	return nil
}

// Аутентификация кассира
func (i *Identity) AuthenticateCashier(ctx context.Context, cashier models.CashierRequest) (*models.CashierData, error) {
	logger.Info("Authenticate cashier", cashier.Login)

	data, err := i.Cashiers.GetCashier(ctx, cashier.Login)
	if err != nil {
		if errors.Is(err, storage.ErrCashierNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.Error("Error getting cashier", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(data.PasswordHash), []byte(cashier.Password)); err != nil {
		logger.Warn("Invalid password", cashier.Login)
		return nil, ErrInvalidCredentials
	}

	logger.Info("Cashier authenticated", cashier.Login)
	return data, nil
}

// Создание строки JWT токена с логином кассира и магазином
func (i *Identity) GenerateJWT(login string, storeID int64) (string, error) {
	expirationTime := time.Now().Add(TokenExpirationTime)

	_, tokenString, err := i.JWTAuth.Encode(map[string]interface{}{
		"login":    login,
		"store_id": storeID,
		"exp":      expirationTime,
	})
	return tokenString, err
}

// Возвращаем указатель на JWTAuth (chi)
func (i *Identity) GetTokenAuth() *jwtauth.JWTAuth {
	return i.JWTAuth
}
