package entities

import (
	"database/sql"
	"time"
)

// ReportFilter — фильтры отчета по выдачам плюс контекст актора,
// по которому репозиторий режет выборку.
type ReportFilter struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	Status      string
	CategoryID  *uint64
	BorrowerID  *uint64
	OnlyOverdue bool

	Page    int
	PerPage int

	Actor          *User
	PermissionsMap map[string]bool
}

// ReportItem — строка отчета по выдачам.
type ReportItem struct {
	LoanID          uint64         `db:"loan_id"`
	BorrowerFio     string         `db:"borrower_fio"`
	BorrowerEmail   string         `db:"borrower_email"`
	EquipmentName   string         `db:"equipment_name"`
	InventoryNumber string         `db:"inventory_number"`
	CategoryName    sql.NullString `db:"category_name"`
	Status          string         `db:"status"`
	StartDate       time.Time      `db:"start_date"`
	DueDate         time.Time      `db:"due_date"`
	CheckedOutAt    sql.NullTime   `db:"checked_out_at"`
	ReturnedAt      sql.NullTime   `db:"returned_at"`
	IsLate          bool           `db:"is_late"`
}
