package main

import (
	"flag"
	"log"

	"lending-system/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	command := flag.String("command", "up", "команда goose: up, down, status, version")
	dir := flag.String("dir", "migrations", "каталог с миграциями")
	flag.Parse()

	cfg := config.New()

	db, err := goose.OpenDBWithDriver("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("не удалось открыть соединение с БД: %v", err)
	}
	defer db.Close()

	if err := goose.Run(*command, db, *dir, flag.Args()...); err != nil {
		log.Fatalf("goose %s: %v", *command, err)
	}
}
