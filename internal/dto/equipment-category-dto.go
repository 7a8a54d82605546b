package dto

type CreateEquipmentCategoryDTO struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty"`
}

type UpdateEquipmentCategoryDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty"`
}

type EquipmentCategoryDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ShortEquipmentCategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
