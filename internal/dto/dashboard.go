package dto

type DashboardCountByGroup struct {
	Name  string `json:"name"`
	Count uint64 `json:"count"`
}

type DashboardChartPoint struct {
	Date  string `json:"date"`
	Count uint64 `json:"count"`
}

type DashboardStatsDTO struct {
	LoansByStatus   []DashboardCountByGroup `json:"loans_by_status"`
	OverdueCount    uint64                  `json:"overdue_count"`
	CheckoutsWeekly []DashboardChartPoint   `json:"checkouts_weekly"`
	TopEquipment    []DashboardCountByGroup `json:"top_equipment"`
	AvgUtilization  float64                 `json:"avg_utilization"`
	PendingRequests uint64                  `json:"pending_requests"`
}

type PublicStatsDTO struct {
	TotalEquipment  uint64                  `json:"total_equipment"`
	AvailableNow    uint64                  `json:"available_now"`
	ActiveLoans     uint64                  `json:"active_loans"`
	CompletedLoans  uint64                  `json:"completed_loans"`
	TopCategories   []DashboardCountByGroup `json:"top_categories"`
	GeneratedAt     string                  `json:"generated_at"`
}
