package main

import (
	"flag"
	"log"

	"lending-system/pkg/config"
	"lending-system/pkg/database/postgresql"
	"lending-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runCore := flag.Bool("core", false, "Запустить наполнение базовых справочников (права, подразделения)")
	runRoles := flag.Bool("roles", false, "Запустить создание ролей и Супер-Администратора")
	runEquipment := flag.Bool("equipment", false, "Запустить наполнение каталога оборудования")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -core -roles -equipment)")

	flag.Parse()

	if !*runCore && !*runRoles && !*runEquipment && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed/main.go -core")
		log.Println("  go run ./seeders/cmd/seed/main.go -core -roles")
		log.Println("  go run ./seeders/cmd/seed/main.go -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")

	// Порядок важен: роли ссылаются на права, оборудование - на категории.
	if *runAll || *runCore {
		seeders.SeedCoreDictionaries(dbPool)
		log.Println("======================================================")
	}

	if *runAll || *runRoles {
		seeders.SeedRolesAndAdmin(dbPool, cfg)
		log.Println("======================================================")
	}

	if *runAll || *runEquipment {
		seeders.SeedEquipmentCatalog(dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
