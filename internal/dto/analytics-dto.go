package dto

type EquipmentUtilizationDTO struct {
	EquipmentID     uint64  `json:"equipment_id"`
	EquipmentName   string  `json:"equipment_name"`
	InventoryNumber string  `json:"inventory_number"`
	WindowStart     string  `json:"window_start"`
	WindowEnd       string  `json:"window_end"`
	BorrowedDays    float64 `json:"borrowed_days"`
	UtilizationRate float64 `json:"utilization_rate"`
	Classification  string  `json:"classification"`
	ComputedAt      string  `json:"computed_at"`
}

type UtilizationSummaryDTO struct {
	WindowDays     int                       `json:"window_days"`
	AverageRate    float64                   `json:"average_rate"`
	UnderusedCount int                       `json:"underused_count"`
	OverusedCount  int                       `json:"overused_count"`
	TopUsed        []EquipmentUtilizationDTO `json:"top_used"`
	LeastUsed      []EquipmentUtilizationDTO `json:"least_used"`
}

type UserReliabilityDTO struct {
	UserID        uint64  `json:"user_id"`
	Fio           string  `json:"fio"`
	TotalLoans    int     `json:"total_loans"`
	OnTimeReturns int     `json:"on_time_returns"`
	LateReturns   int     `json:"late_returns"`
	NoShows       int     `json:"no_shows"`
	OnTimeRate    float64 `json:"on_time_rate"`
	NoShowRate    float64 `json:"no_show_rate"`
	Score         float64 `json:"score"`
	Grade         string  `json:"grade"`
	ComputedAt    string  `json:"computed_at"`
}
