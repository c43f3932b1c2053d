package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lavkaplus/loyalty/internal/config"
	"github.com/lavkaplus/loyalty/internal/logger"
	"github.com/lavkaplus/loyalty/internal/network/router"
	"github.com/lavkaplus/loyalty/internal/storage"
	"github.com/lavkaplus/loyalty/internal/worker"
)

func Run(config config.Config) {

	db, err := storage.NewDatabase(config.Server.DatabaseDSN)
	if err != nil {
		logger.Panic("error create database", err.Error())
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error close database", err.Error())
		}
	}()
	if err := db.Initialize(); err != nil {
		logger.Panic("error initialize database", err.Error())
	}
	store := storage.NewStorage(db)

	router := router.NewRouter(config, store, db)

	server := &http.Server{
		Addr:    config.Server.ListenAddr,
		Handler: router.HandleRouter(),
	}
	// Создание и запуск фоновой очистки просроченных скидок
	reaper := worker.NewExpiryReaper(store.Discounts, store.Ledger, config.Reconcile.ReaperInterval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reaper.Start(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info(
			"Starting server config:", config,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("error listen server", err.Error())
		}
	}()

	<-stop
	logger.Info("Shutdown server")
	reaper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutdown server", err.Error())
	}
	logger.Info("Server stopped")
}
