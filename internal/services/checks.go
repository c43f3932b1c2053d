package services

import (
	"sync"
	"time"

	"github.com/lavkaplus/loyalty/internal/models"
	"github.com/shopspring/decimal"
)

// CheckAmounts - суммы чеков, опубликованные кассовыми агентами магазинов.
// Один слот на магазин, каждая новая публикация перезаписывает предыдущую.
// Хранится только в памяти: при перезапуске сервиса суммы теряются, кассир
// переходит на ручной ввод. Это осознанное ограничение, а не дефект.
type CheckAmounts struct {
	mu    sync.RWMutex
	ttl   time.Duration
	slots map[int64]models.CheckAmount
}

// Создание хранилища сумм чеков
func NewCheckAmounts(ttl time.Duration) *CheckAmounts {
	return &CheckAmounts{
		ttl:   ttl,
		slots: make(map[int64]models.CheckAmount),
	}
}

// Register - публикация суммы чека агентом. Последняя запись побеждает:
// у магазина одна активная кассовая сессия.
func (c *CheckAmounts) Register(storeID int64, amount decimal.Decimal, registeredAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[storeID] = models.CheckAmount{
		Amount:       amount,
		RegisteredAt: registeredAt,
	}
}

// Get - чтение суммы чека кассиром. Отсутствующая или устаревшая запись
// возвращает ErrNoCheckAmount: лучше ручной ввод, чем тихо отданная
// неактуальная сумма.
func (c *CheckAmounts) Get(storeID int64) (*models.CheckAmount, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	check, ok := c.slots[storeID]
	if !ok {
		return nil, ErrNoCheckAmount
	}
	if c.ttl > 0 && time.Since(check.RegisteredAt) > c.ttl {
		return nil, ErrNoCheckAmount
	}
	return &check, nil
}
