package authz

import (
	"strings"

	"lending-system/internal/entities"
)

type Context struct {
	Actor             *entities.User
	Permissions       map[string]bool
	Target            interface{}
	CurrentPermission string
}

func (c *Context) HasPermission(permission string) bool {
	if c.Permissions == nil {
		return false
	}
	_, exists := c.Permissions[permission]
	return exists
}

func getAction(permission string) string {
	parts := strings.Split(permission, ":")
	if len(parts) > 1 {
		return parts[1]
	}
	return ""
}

// canAccessLoan — логика для Заявок на выдачу (СТРОГАЯ)
func canAccessLoan(ctx Context, target *entities.LoanRequest) bool {
	action := getAction(ctx.CurrentPermission)
	actor := ctx.Actor

	// Просмотр заявки
	if action == "view" {
		// Глобальные права видят всё
		if ctx.HasPermission(ScopeAll) {
			return true
		}
		// Проверка по кафедре/факультету (совпадает ли департамент)
		if ctx.HasPermission(ScopeDepartment) && actor.DepartmentID != nil && target.Borrower != nil &&
			target.Borrower.DepartmentID != nil && *actor.DepartmentID == *target.Borrower.DepartmentID {
			return true
		}
		// Собственные заявки
		if ctx.HasPermission(ScopeOwn) && target.BorrowerID == actor.ID {
			return true
		}
		return false
	}

	// Решения по заявке (approve/checkout/return) — только сотрудники с правом и скоупом
	if action == "approve" || action == "checkout" || action == "return" {
		if ctx.HasPermission(ScopeAll) {
			return true
		}
		if ctx.HasPermission(ScopeDepartment) && actor.DepartmentID != nil && target.Borrower != nil &&
			target.Borrower.DepartmentID != nil && *actor.DepartmentID == *target.Borrower.DepartmentID {
			return true
		}
		return false
	}

	// Редактирование/отмена/удаление

	// Админ может всё
	if ctx.HasPermission(ScopeAll) {
		return true
	}

	// Заявки своей кафедры (преподаватель правит заявки своих студентов)
	if ctx.HasPermission(ScopeDepartment) && actor.DepartmentID != nil && target.Borrower != nil &&
		target.Borrower.DepartmentID != nil && *actor.DepartmentID == *target.Borrower.DepartmentID {
		return true
	}

	// Свои заявки (студент может отменить/редактировать собственную)
	if ctx.HasPermission(ScopeOwn) && target.BorrowerID == actor.ID {
		return true
	}

	return false
}

// canAccessUser — логика для Пользователей
func canAccessUser(ctx Context, target *entities.User) bool {
	actor := ctx.Actor
	action := getAction(ctx.CurrentPermission)

	// Правило 1: Сам себя вижу и правлю (если есть базовые права)
	if actor.ID == target.ID {
		return true
	}

	// Правило 2: Админ
	if ctx.HasPermission(ScopeAll) {
		return true
	}

	// Правило 3: Глобальный просмотр.
	// Если действие == view, разрешаем доступ к карточке любого пользователя:
	// сотруднику нужно видеть получателя при выдаче.
	if action == "view" {
		return true
	}

	// === ДЛЯ РЕДАКТИРОВАНИЯ/УДАЛЕНИЯ — СТРОГАЯ ИЕРАРХИЯ ===

	if ctx.HasPermission(ScopeDepartment) && actor.DepartmentID != nil && target.DepartmentID != nil && *actor.DepartmentID == *target.DepartmentID {
		return true
	}

	return false
}

func CanDo(permission string, ctx Context) bool {
	// 1. Фиксация права
	ctx.CurrentPermission = permission

	// 2. Superuser минует все проверки
	if ctx.HasPermission(Superuser) {
		return true
	}

	// 3. Есть ли право вообще (RBAC)
	if !ctx.HasPermission(permission) {
		return false
	}

	// 4. Без цели — разрешено (например создание)
	if ctx.Target == nil {
		return true
	}

	// 5. Проверка цели (ABAC)
	switch target := ctx.Target.(type) {
	case *entities.LoanRequest:
		return canAccessLoan(ctx, target)
	case *entities.User:
		return canAccessUser(ctx, target)
	}

	return true
}
