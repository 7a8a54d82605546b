package dto

type CreateReservationDTO struct {
	EquipmentID uint64  `json:"equipment_id" validate:"required,gt=0"`
	StartDate   string  `json:"start_date" validate:"required"` // RFC3339
	EndDate     string  `json:"end_date" validate:"required"`   // RFC3339
	Note        *string `json:"note,omitempty" validate:"omitempty,max=1000"`
}

type UpdateReservationDTO struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Note      *string `json:"note,omitempty" validate:"omitempty,max=1000"`
}

type ReservationDTO struct {
	ID        uint64  `json:"id"`
	Status    string  `json:"status"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Note      *string `json:"note,omitempty"`

	Equipment ShortEquipmentDTO `json:"equipment"`
	User      ShortUserDTO      `json:"user"`

	CreatedAt string `json:"created_at"`
}
