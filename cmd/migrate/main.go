package main

// Запуск миграций БД:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"rag-platform-server/config"
)

func main() {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Printf("ошибка загрузки конфигурации: %v", err)
		os.Exit(1)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Printf("не удалось подключиться к БД: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := config.RunMigrations(context.Background(), db); err != nil {
		log.Printf("ошибка применения миграций: %v", err)
		os.Exit(1)
	}

	log.Println("миграции успешно применены")
}
