package entities

import (
	"lending-system/pkg/types"
)

type Department struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`

	types.BaseEntity
}
