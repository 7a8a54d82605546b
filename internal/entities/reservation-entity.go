package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"lending-system/pkg/types"
)

// Статусы брони
const (
	ReservationStatusActive    = "active"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
)

type Reservation struct {
	ID          uint64      `json:"id" db:"id"`
	EquipmentID uint64      `json:"equipment_id" db:"equipment_id"`
	UserID      uint64      `json:"user_id" db:"user_id"`
	StartDate   time.Time   `json:"start_date" db:"start_date"`
	EndDate     time.Time   `json:"end_date" db:"end_date"`
	Status      string      `json:"status" db:"status"`
	Note        null.String `json:"note,omitempty" db:"note"`

	types.BaseEntity

	Equipment *Equipment `db:"-" json:"equipment,omitempty"`
	User      *User      `db:"-" json:"user,omitempty"`
}
