package types

import "time"

// BaseEntity — общие колонки created_at / updated_at.
type BaseEntity struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SoftDelete — колонка deleted_at для мягкого удаления.
type SoftDelete struct {
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
