package entities

import (
	"time"
)

// Классификация загрузки оборудования
const (
	UtilizationUnderused = "underused"
	UtilizationNormal    = "normal"
	UtilizationOverused  = "overused"
)

// EquipmentUtilization — посчитанная загрузка единицы оборудования за окно анализа.
type EquipmentUtilization struct {
	ID              uint64    `json:"id" db:"id"`
	EquipmentID     uint64    `json:"equipment_id" db:"equipment_id"`
	WindowStart     time.Time `json:"window_start" db:"window_start"`
	WindowEnd       time.Time `json:"window_end" db:"window_end"`
	BorrowedDays    float64   `json:"borrowed_days" db:"borrowed_days"`
	UtilizationRate float64   `json:"utilization_rate" db:"utilization_rate"`
	Classification  string    `json:"classification" db:"classification"`
	ComputedAt      time.Time `json:"computed_at" db:"computed_at"`

	Equipment *Equipment `db:"-" json:"equipment,omitempty"`
}

// Оценки надежности пользователя
const (
	ReliabilityGradeExcellent = "excellent"
	ReliabilityGradeGood      = "good"
	ReliabilityGradeFair      = "fair"
	ReliabilityGradePoor      = "poor"
)

// UserReliability — посчитанный рейтинг надежности заемщика.
type UserReliability struct {
	ID            uint64    `json:"id" db:"id"`
	UserID        uint64    `json:"user_id" db:"user_id"`
	TotalLoans    int       `json:"total_loans" db:"total_loans"`
	OnTimeReturns int       `json:"on_time_returns" db:"on_time_returns"`
	LateReturns   int       `json:"late_returns" db:"late_returns"`
	NoShows       int       `json:"no_shows" db:"no_shows"`
	OnTimeRate    float64   `json:"on_time_rate" db:"on_time_rate"`
	NoShowRate    float64   `json:"no_show_rate" db:"no_show_rate"`
	Score         float64   `json:"score" db:"score"`
	Grade         string    `json:"grade" db:"grade"`
	ComputedAt    time.Time `json:"computed_at" db:"computed_at"`

	User *User `db:"-" json:"user,omitempty"`
}
