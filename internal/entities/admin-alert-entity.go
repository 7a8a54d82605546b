package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Типы оповещений
const (
	AlertTypeLoanOverdue = "loan_overdue"
)

type AdminAlert struct {
	ID             uint64      `json:"id" db:"id"`
	Type           string      `json:"type" db:"type"`
	LoanRequestID  null.Uint64 `json:"loan_request_id,omitempty" db:"loan_request_id"`
	EquipmentID    null.Uint64 `json:"equipment_id,omitempty" db:"equipment_id"`
	Message        string      `json:"message" db:"message"`
	IsAcknowledged bool        `json:"is_acknowledged" db:"is_acknowledged"`
	AcknowledgedBy null.Uint64 `json:"acknowledged_by,omitempty" db:"acknowledged_by"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
}
