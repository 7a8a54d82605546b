package dto

type AdminAlertDTO struct {
	ID             uint64  `json:"id"`
	Type           string  `json:"type"`
	LoanRequestID  *uint64 `json:"loan_request_id,omitempty"`
	EquipmentID    *uint64 `json:"equipment_id,omitempty"`
	Message        string  `json:"message"`
	IsAcknowledged bool    `json:"is_acknowledged"`
	AcknowledgedBy *uint64 `json:"acknowledged_by,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
