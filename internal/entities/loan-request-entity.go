package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"lending-system/pkg/types"
)

// Статусы заявки на выдачу
const (
	LoanStatusPending   = "pending"
	LoanStatusApproved  = "approved"
	LoanStatusRejected  = "rejected"
	LoanStatusBorrowed  = "borrowed"
	LoanStatusReturned  = "returned"
	LoanStatusOverdue   = "overdue"
	LoanStatusCancelled = "cancelled"
	LoanStatusNoShow    = "no_show"
)

type LoanRequest struct {
	ID          uint64 `json:"id" db:"id"`
	EquipmentID uint64 `json:"equipment_id" db:"equipment_id"`
	BorrowerID  uint64 `json:"borrower_id" db:"borrower_id"`
	Status      string `json:"status" db:"status"`
	Purpose     string `json:"purpose" db:"purpose"`

	StartDate time.Time `json:"start_date" db:"start_date"`
	DueDate   time.Time `json:"due_date" db:"due_date"`

	ApprovedBy   null.Uint64 `json:"approved_by,omitempty" db:"approved_by"`
	DecisionNote null.String `json:"decision_note,omitempty" db:"decision_note"`
	CheckedOutAt null.Time   `json:"checked_out_at,omitempty" db:"checked_out_at"`
	ReturnedAt   null.Time   `json:"returned_at,omitempty" db:"returned_at"`
	IsLate       bool        `json:"is_late" db:"is_late"`

	types.BaseEntity

	// Поля для связанных данных (не колонки в таблице)
	Equipment *Equipment `db:"-" json:"equipment,omitempty"`
	Borrower  *User      `db:"-" json:"borrower,omitempty"`
}

// IsActive сообщает, держит ли заявка оборудование прямо сейчас.
func (l *LoanRequest) IsActive() bool {
	switch l.Status {
	case LoanStatusPending, LoanStatusApproved, LoanStatusBorrowed, LoanStatusOverdue:
		return true
	}
	return false
}
