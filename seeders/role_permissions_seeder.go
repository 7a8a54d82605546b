package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// false - Ничего НЕ УДАЛЯТЬ, только ДОБАВИТЬ недостающие связи.
// Это безопасно для работающей системы, где права могут меняться вручную.
const fullSync_RolePermissions = false

func seedRolePermissions(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'role_permissions'...")

	rolePermissions := getRolePermissionsMap()

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if fullSync_RolePermissions {
		log.Println("    - Стратегия: Полная перезапись (TRUNCATE)")
		if _, err := tx.Exec(ctx, "TRUNCATE TABLE role_permissions RESTART IDENTITY"); err != nil {
			return err
		}
	} else {
		log.Println("    - Стратегия: Только добавление новых связей (ADDITIVE)")
	}

	// ON CONFLICT DO NOTHING не даст создать дубликат связи.
	query := `INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	for roleName, permissionNames := range rolePermissions {
		var roleID uint64
		err := tx.QueryRow(ctx, "SELECT id FROM roles WHERE name = $1", roleName).Scan(&roleID)
		if err != nil {
			log.Printf("ПРЕДУПРЕЖДЕНИЕ: Роль '%s' не найдена, пропускаем.", roleName)
			continue
		}

		for _, permName := range permissionNames {
			var permID uint64
			err := tx.QueryRow(ctx, "SELECT id FROM permissions WHERE name = $1", permName).Scan(&permID)
			if err != nil {
				log.Printf("ПРЕДУПРЕЖДЕНИЕ: Привилегия '%s' не найдена, пропускаем.", permName)
				continue
			}

			if _, err := tx.Exec(ctx, query, roleID, permID); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}
