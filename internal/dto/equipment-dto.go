package dto

type CreateEquipmentDTO struct {
	InventoryNumber string  `json:"inventory_number" validate:"required,max=64"`
	Name            string  `json:"name" validate:"required,max=255"`
	CategoryID      uint64  `json:"category_id" validate:"required,gt=0"`
	Status          string  `json:"status" validate:"omitempty,oneof=available maintenance retired"`
	Location        *string `json:"location,omitempty" validate:"omitempty,max=255"`
	Description     *string `json:"description,omitempty"`
}

type UpdateEquipmentDTO struct {
	InventoryNumber *string `json:"inventory_number,omitempty" validate:"omitempty,max=64"`
	Name            *string `json:"name,omitempty"              validate:"omitempty,max=255"`
	CategoryID      *uint64 `json:"category_id,omitempty"       validate:"omitempty,gt=0"`
	Status          *string `json:"status,omitempty"            validate:"omitempty,oneof=available borrowed reserved maintenance retired"`
	Location        *string `json:"location,omitempty"          validate:"omitempty,max=255"`
	Description     *string `json:"description,omitempty"`
}

type EquipmentDTO struct {
	ID              uint64  `json:"id"`
	InventoryNumber string  `json:"inventory_number"`
	Name            string  `json:"name"`
	Status          string  `json:"status"`
	Location        *string `json:"location,omitempty"`
	Description     *string `json:"description,omitempty"`
	ImagePath       *string `json:"image_path,omitempty"`
	ThumbnailPath   *string `json:"thumbnail_path,omitempty"`

	Category ShortEquipmentCategoryDTO `json:"category"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ShortEquipmentDTO struct {
	ID              uint64 `json:"id"`
	InventoryNumber string `json:"inventory_number"`
	Name            string `json:"name"`
}
