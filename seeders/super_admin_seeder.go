package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"lending-system/pkg/config"
	"lending-system/pkg/utils"
)

func SeedSuperAdmin(db *pgxpool.Pool, cfg *config.Config) error {
	ctx := context.Background()
	log.Println("  - Запуск сидера SuperAdmin...")

	email := cfg.Seeder.AdminEmail
	password := cfg.Seeder.AdminPassword

	if email == "" || password == "" {
		log.Println("    ℹ️  SEED_ADMIN_EMAIL или SEED_ADMIN_PASSWORD не заданы. Пропускаем создание.")
		return nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID uint64
	err = tx.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)

	if err == nil {
		log.Println("    ℹ️  Root пользователь уже существует. Не трогаем.")
		return tx.Commit(ctx)
	}

	log.Println("    - Создаем нового Root пользователя...")

	var roleID uint64
	if err := tx.QueryRow(ctx, "SELECT id FROM roles WHERE name = 'SuperAdmin'").Scan(&roleID); err != nil {
		return fmt.Errorf("роль SuperAdmin не найдена. Запустите сначала сидер ролей")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (fio, email, phone_number, password, role_id, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		"System Administrator", email, "", hashedPassword, roleID,
	).Scan(&userID)

	if err != nil {
		return fmt.Errorf("ошибка SQL при создании Root: %w", err)
	}

	log.Printf("    ✅ Пользователь %s успешно создан", email)
	return tx.Commit(ctx)
}
