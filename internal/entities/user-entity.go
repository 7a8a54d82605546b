// Файл: internal/entities/user_entity.go
package entities

import (
	"lending-system/pkg/types"
)

type User struct {
	ID          uint64 `json:"id" db:"id"`
	Fio         string `json:"fio" db:"fio"`
	Email       string `json:"email" db:"email"`
	PhoneNumber string `json:"phone_number" db:"phone_number"`

	Password string `json:"-" db:"password"`

	RoleID   uint64 `json:"role_id" db:"role_id"`
	IsActive bool   `json:"is_active" db:"is_active"`

	// Кафедра/факультет — опционально, нужна для scope:department
	DepartmentID *uint64 `json:"department_id,omitempty" db:"department_id"`

	PhotoURL *string `json:"photo_url,omitempty" db:"photo_url"`

	types.BaseEntity
	types.SoftDelete

	Role *Role `db:"-" json:"role,omitempty"`
}
