package entities

import (
	"lending-system/pkg/types"
)

type EquipmentCategory struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	types.BaseEntity
}
