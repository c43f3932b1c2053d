package models

import "time"

// StoreData - модель магазина сети
type StoreData struct {
	ID        int64
	Name      string
	APIKey    string
	AgentURL  string
	CreatedAt time.Time
}

// CashierData - модель кассира из хранилища
type CashierData struct {
	ID           string
	Login        string
	PasswordHash string
	StoreID      int64
}

// CashierRequest - модель для аутентификации кассира, приходит извне
type CashierRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
