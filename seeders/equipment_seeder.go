package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedEquipmentCategories(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'equipment_categories'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO equipment_categories (name, description) VALUES ($1, $2)
			  ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description`
	for _, c := range categoriesData {
		if _, err := tx.Exec(ctx, query, c.Name, c.Description); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedEquipment(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'equipments'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO equipments (inventory_number, name, category_id, status, location)
		SELECT $1, $2, c.id, 'available', $4
		FROM equipment_categories c
		WHERE c.name = $3
		ON CONFLICT (inventory_number) DO NOTHING
	`
	for _, e := range equipmentData {
		if _, err := tx.Exec(ctx, query, e.InventoryNumber, e.Name, e.Category, e.Location); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
