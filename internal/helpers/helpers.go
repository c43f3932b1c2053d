package helpers

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lavkaplus/loyalty/internal/logger"
)

// GetCashierLogin - извлекает логин кассира из контекста JWT токена
func GetCashierLogin(context context.Context) (string, error) {
	_, claims, _ := jwtauth.FromContext(context)
	login, ok := claims["login"].(string)
	if !ok {
		logger.Warn("Undefined login from token")
		return "", fmt.Errorf("undefined login")
	}
	return login, nil
}

// GetCashierStore - извлекает магазин кассира из контекста JWT токена
func GetCashierStore(context context.Context) (int64, error) {
	_, claims, _ := jwtauth.FromContext(context)
	// числовые claims декодируются в float64
	storeID, ok := claims["store_id"].(float64)
	if !ok {
		logger.Warn("Undefined store from token")
		return 0, fmt.Errorf("undefined store")
	}
	return int64(storeID), nil
}
