package dto

// DashboardSummaryResponse aggregates the values the home screen shows
type DashboardSummaryResponse struct {
	TotalStudents    int                `json:"totalStudents"`
	MaleCount        int                `json:"maleCount"`
	FemaleCount      int                `json:"femaleCount"`
	MalePercentage   float64            `json:"malePercentage"`
	FemalePercentage float64            `json:"femalePercentage"`
	RecentActivities []ActivityResponse `json:"recentActivities"`
}

// StatsResponse represents counts grouped by a student attribute,
// e.g. gender or faculty
type StatsResponse struct {
	Counts map[string]int `json:"counts"`
}

// DistributionEntry is one value's slice of a grouped count
type DistributionEntry struct {
	Value      string  `json:"value" example:"Femenino"`
	Count      int     `json:"count" example:"12"`
	Percentage float64 `json:"percentage" example:"42.9"`
}

// StatisticsResponse carries the per-field breakdowns the statistics
// screen charts. Keys are the student columns: genero, universidad,
// facultad, anio_carrera, horario and herramienta_tecnica.
type StatisticsResponse struct {
	TotalStudents int                            `json:"totalStudents"`
	Fields        map[string][]DistributionEntry `json:"fields"`
}
