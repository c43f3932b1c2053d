package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCheckAmounts_RegisterAndGet(t *testing.T) {
	checks := NewCheckAmounts(15 * time.Minute)

	t.Run("Error. Nothing registered #1", func(t *testing.T) {
		if _, err := checks.Get(1); !errors.Is(err, ErrNoCheckAmount) {
			t.Errorf("Expected ErrNoCheckAmount, got '%v'", err)
		}
	})

	t.Run("Success. Registered amount is returned #2", func(t *testing.T) {
		now := time.Now()
		checks.Register(1, decimal.NewFromInt(1000), now)

		check, err := checks.Get(1)
		if err != nil {
			t.Fatalf("Expected no error, got '%v'", err)
		}
		if !check.Amount.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("Expected amount 1000, got %s", check.Amount)
		}
		if !check.RegisteredAt.Equal(now) {
			t.Errorf("Expected registered at %v, got %v", now, check.RegisteredAt)
		}
	})

	t.Run("Success. Last write wins #3", func(t *testing.T) {
		checks.Register(1, decimal.NewFromInt(1000), time.Now())
		checks.Register(1, decimal.NewFromInt(2500), time.Now())

		check, err := checks.Get(1)
		if err != nil {
			t.Fatalf("Expected no error, got '%v'", err)
		}
		if !check.Amount.Equal(decimal.NewFromInt(2500)) {
			t.Errorf("Expected amount 2500, got %s", check.Amount)
		}
	})

	t.Run("Success. Stores do not share slots #4", func(t *testing.T) {
		checks.Register(2, decimal.NewFromInt(300), time.Now())

		check, err := checks.Get(2)
		if err != nil {
			t.Fatalf("Expected no error, got '%v'", err)
		}
		if !check.Amount.Equal(decimal.NewFromInt(300)) {
			t.Errorf("Expected amount 300, got %s", check.Amount)
		}
	})

	t.Run("Error. Stale amount is not served #5", func(t *testing.T) {
		checks.Register(3, decimal.NewFromInt(100), time.Now().Add(-16*time.Minute))

		if _, err := checks.Get(3); !errors.Is(err, ErrNoCheckAmount) {
			t.Errorf("Expected ErrNoCheckAmount, got '%v'", err)
		}
	})
}

func TestCheckAmounts_Concurrency(t *testing.T) {
	checks := NewCheckAmounts(15 * time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int64) {
			defer wg.Done()
			checks.Register(n%5, decimal.NewFromInt(n), time.Now())
		}(int64(i))
		go func(n int64) {
			defer wg.Done()
			_, _ = checks.Get(n % 5)
		}(int64(i))
	}
	wg.Wait()

	for storeID := int64(0); storeID < 5; storeID++ {
		if _, err := checks.Get(storeID); err != nil {
			t.Errorf("Expected amount for store %d, got '%v'", storeID, err)
		}
	}
}
