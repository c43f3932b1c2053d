package main

import (
	"fmt"

	"github.com/lavkaplus/loyalty/internal/app"
	"github.com/lavkaplus/loyalty/internal/config"
	"github.com/lavkaplus/loyalty/internal/logger"
)

func main() {
	// загрузка конфига
	config := config.NewConfig()
	// инициализация логгера
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		panic(fmt.Sprintf("can't initialize logger: %s ", err.Error()))
	}
	defer logger.Sync()
	// запуск сервиса
	app.Run(config)
}
