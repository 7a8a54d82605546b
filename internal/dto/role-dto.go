package dto

type CreateRoleDTO struct {
	Name          string   `json:"name" validate:"required,max=64"`
	Description   string   `json:"description" validate:"omitempty"`
	PermissionIDs []uint64 `json:"permission_ids" validate:"omitempty,dive,gt=0"`
}

type UpdateRoleDTO struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,max=64"`
	Description   *string  `json:"description,omitempty"`
	PermissionIDs []uint64 `json:"permission_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

type RoleDTO struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type PermissionDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
