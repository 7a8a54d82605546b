package dto

type CreateLoanRequestDTO struct {
	EquipmentID uint64 `json:"equipment_id" validate:"required,gt=0"`
	Purpose     string `json:"purpose" validate:"required,max=1000"`
	StartDate   string `json:"start_date" validate:"required"` // RFC3339
	DueDate     string `json:"due_date" validate:"required"`   // RFC3339
}

type LoanDecisionDTO struct {
	Note string `json:"note" validate:"omitempty,max=1000"`
}

type LoanRequestDTO struct {
	ID           uint64  `json:"id"`
	Status       string  `json:"status"`
	Purpose      string  `json:"purpose"`
	StartDate    string  `json:"start_date"`
	DueDate      string  `json:"due_date"`
	CheckedOutAt *string `json:"checked_out_at,omitempty"`
	ReturnedAt   *string `json:"returned_at,omitempty"`
	DecisionNote *string `json:"decision_note,omitempty"`
	IsLate       bool    `json:"is_late"`

	Equipment ShortEquipmentDTO `json:"equipment"`
	Borrower  ShortUserDTO      `json:"borrower"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
