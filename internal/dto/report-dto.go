package dto

type ReportItemDTO struct {
	LoanID          uint64 `json:"loan_id"`
	BorrowerFio     string `json:"borrower_fio"`
	BorrowerEmail   string `json:"borrower_email"`
	EquipmentName   string `json:"equipment_name"`
	InventoryNumber string `json:"inventory_number"`
	CategoryName    string `json:"category_name"`
	Status          string `json:"status"`
	StartDate       string `json:"start_date"`
	DueDate         string `json:"due_date"`
	CheckedOutAt    string `json:"checked_out_at"`
	ReturnedAt      string `json:"returned_at"`
	IsLate          bool   `json:"is_late"`
}
