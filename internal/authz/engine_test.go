package authz

import (
	"testing"

	"lending-system/internal/entities"

	"github.com/stretchr/testify/assert"
)

func perms(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func uintPtr(v uint64) *uint64 { return &v }

func TestCanDo_Superuser(t *testing.T) {
	ctx := Context{
		Actor:       &entities.User{ID: 1},
		Permissions: perms(Superuser),
	}

	assert.True(t, CanDo(LoansApprove, ctx))
	assert.True(t, CanDo(UsersDelete, ctx))
}

func TestCanDo_RBAC(t *testing.T) {
	ctx := Context{
		Actor:       &entities.User{ID: 1},
		Permissions: perms(LoansView),
	}

	// Право есть, цели нет - разрешено
	assert.True(t, CanDo(LoansView, ctx))
	// Права нет вовсе
	assert.False(t, CanDo(LoansApprove, ctx))
}

func TestCanDo_LoanScopes(t *testing.T) {
	dept := uintPtr(10)
	otherDept := uintPtr(20)

	ownLoan := &entities.LoanRequest{
		BorrowerID: 1,
		Borrower:   &entities.User{ID: 1, DepartmentID: dept},
	}
	deptLoan := &entities.LoanRequest{
		BorrowerID: 2,
		Borrower:   &entities.User{ID: 2, DepartmentID: dept},
	}
	foreignLoan := &entities.LoanRequest{
		BorrowerID: 3,
		Borrower:   &entities.User{ID: 3, DepartmentID: otherDept},
	}

	t.Run("scope:own видит только свои заявки", func(t *testing.T) {
		ctx := Context{
			Actor:       &entities.User{ID: 1, DepartmentID: dept},
			Permissions: perms(LoansView, ScopeOwn),
		}
		ctx.Target = ownLoan
		assert.True(t, CanDo(LoansView, ctx))
		ctx.Target = deptLoan
		assert.False(t, CanDo(LoansView, ctx))
	})

	t.Run("scope:department видит заявки своего подразделения", func(t *testing.T) {
		ctx := Context{
			Actor:       &entities.User{ID: 1, DepartmentID: dept},
			Permissions: perms(LoansView, ScopeDepartment),
		}
		ctx.Target = deptLoan
		assert.True(t, CanDo(LoansView, ctx))
		ctx.Target = foreignLoan
		assert.False(t, CanDo(LoansView, ctx))
	})

	t.Run("scope:all видит всё", func(t *testing.T) {
		ctx := Context{
			Actor:       &entities.User{ID: 1},
			Permissions: perms(LoansView, ScopeAll),
		}
		ctx.Target = foreignLoan
		assert.True(t, CanDo(LoansView, ctx))
	})

	t.Run("approve требует скоуп сотрудника", func(t *testing.T) {
		ctx := Context{
			Actor:       &entities.User{ID: 1, DepartmentID: dept},
			Permissions: perms(LoansApprove, ScopeOwn),
			Target:      ownLoan,
		}
		// Свою заявку одобрить нельзя даже с правом approve
		assert.False(t, CanDo(LoansApprove, ctx))

		ctx.Permissions = perms(LoansApprove, ScopeDepartment)
		ctx.Target = deptLoan
		assert.True(t, CanDo(LoansApprove, ctx))
	})

	t.Run("отмена собственной заявки со scope:own", func(t *testing.T) {
		ctx := Context{
			Actor:       &entities.User{ID: 1, DepartmentID: dept},
			Permissions: perms(LoansUpdate, ScopeOwn),
			Target:      ownLoan,
		}
		assert.True(t, CanDo(LoansUpdate, ctx))

		ctx.Target = deptLoan
		assert.False(t, CanDo(LoansUpdate, ctx))
	})

	t.Run("отмена заявки своей кафедры со scope:department", func(t *testing.T) {
		ctx := Context{
			Actor:       &entities.User{ID: 1, DepartmentID: dept},
			Permissions: perms(LoansUpdate, ScopeDepartment),
			Target:      deptLoan,
		}
		assert.True(t, CanDo(LoansUpdate, ctx))

		ctx.Target = foreignLoan
		assert.False(t, CanDo(LoansUpdate, ctx))
	})
}

func TestCanDo_UserTargets(t *testing.T) {
	dept := uintPtr(10)
	otherDept := uintPtr(20)

	t.Run("сам себя вижу и правлю", func(t *testing.T) {
		actor := &entities.User{ID: 5, DepartmentID: dept}
		ctx := Context{
			Actor:       actor,
			Permissions: perms(UsersUpdate),
			Target:      actor,
		}
		assert.True(t, CanDo(UsersUpdate, ctx))
	})

	t.Run("просмотр чужой карточки разрешен при праве view", func(t *testing.T) {
		ctx := Context{
			Actor:       &entities.User{ID: 5, DepartmentID: dept},
			Permissions: perms(UsersView),
			Target:      &entities.User{ID: 6, DepartmentID: otherDept},
		}
		assert.True(t, CanDo(UsersView, ctx))
	})

	t.Run("редактирование чужого требует скоупа", func(t *testing.T) {
		ctx := Context{
			Actor:       &entities.User{ID: 5, DepartmentID: dept},
			Permissions: perms(UsersUpdate),
			Target:      &entities.User{ID: 6, DepartmentID: dept},
		}
		assert.False(t, CanDo(UsersUpdate, ctx))

		ctx.Permissions = perms(UsersUpdate, ScopeDepartment)
		assert.True(t, CanDo(UsersUpdate, ctx))

		ctx.Target = &entities.User{ID: 7, DepartmentID: otherDept}
		assert.False(t, CanDo(UsersUpdate, ctx))

		ctx.Permissions = perms(UsersUpdate, ScopeAll)
		assert.True(t, CanDo(UsersUpdate, ctx))
	})
}
