package entities

import (
	"lending-system/pkg/types"
)

// Статусы оборудования
const (
	EquipmentStatusAvailable   = "available"
	EquipmentStatusBorrowed    = "borrowed"
	EquipmentStatusReserved    = "reserved"
	EquipmentStatusMaintenance = "maintenance"
	EquipmentStatusRetired     = "retired"
)

type Equipment struct {
	ID              uint64  `json:"id" db:"id"`
	InventoryNumber string  `json:"inventory_number" db:"inventory_number"`
	Name            string  `json:"name" db:"name"`
	CategoryID      uint64  `json:"category_id" db:"category_id"`
	Status          string  `json:"status" db:"status"`
	Location        *string `json:"location,omitempty" db:"location"`
	Description     *string `json:"description,omitempty" db:"description"`
	ImagePath       *string `json:"image_path,omitempty" db:"image_path"`
	ThumbnailPath   *string `json:"thumbnail_path,omitempty" db:"thumbnail_path"`

	types.BaseEntity
	types.SoftDelete

	// Поля для связанных данных (не колонки в таблице)
	Category *EquipmentCategory `db:"-" json:"category,omitempty"`
}
