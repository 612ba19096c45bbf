package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models/dto"
)

// dashboardRecentActivities is how many log entries the home screen shows
const dashboardRecentActivities = 5

// statisticsFields are the student columns the statistics screen
// breaks down, in the order the charts render them
var statisticsFields = []string{
	"genero",
	"universidad",
	"facultad",
	"anio_carrera",
	"horario",
	"herramienta_tecnica",
}

// DashboardService defines the interface for home screen aggregation
type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardSummaryResponse, error)
	Statistics(ctx context.Context) (*dto.StatisticsResponse, error)
}

// dashboardServiceImpl implements DashboardService
type dashboardServiceImpl struct {
	students   StudentStore
	activities ActivityService
	logger     zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(students StudentStore, activities ActivityService, logger zerolog.Logger) DashboardService {
	return &dashboardServiceImpl{
		students:   students,
		activities: activities,
		logger:     logger,
	}
}

// Summary computes the dashboard numbers in one pass over the gender stats
func (s *dashboardServiceImpl) Summary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	counts, err := s.students.GetStatsByField(ctx, "genero")
	if err != nil {
		return nil, err
	}

	total := 0
	male := 0
	female := 0
	for gender, count := range counts {
		total += count
		switch normalizeGender(gender) {
		case "m":
			male += count
		case "f":
			female += count
		}
	}

	summary := &dto.DashboardSummaryResponse{
		TotalStudents:    total,
		MaleCount:        male,
		FemaleCount:      female,
		MalePercentage:   percentage(male, total),
		FemalePercentage: percentage(female, total),
	}

	// FetchRecent already degrades to empty on failure
	recent, _ := s.activities.FetchRecent(ctx, dashboardRecentActivities)
	resp := dto.ToActivityListResponse(recent)
	summary.RecentActivities = resp.Activities

	return summary, nil
}

// Statistics breaks the student population down per demographic field,
// each value with its count and its share of the total
func (s *dashboardServiceImpl) Statistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	total, err := s.students.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	fields := make(map[string][]dto.DistributionEntry, len(statisticsFields))
	for _, field := range statisticsFields {
		counts, err := s.students.GetStatsByField(ctx, field)
		if err != nil {
			return nil, err
		}
		fields[field] = toDistribution(counts, total)
	}

	return &dto.StatisticsResponse{
		TotalStudents: total,
		Fields:        fields,
	}, nil
}

// toDistribution turns grouped counts into chart entries, largest
// group first
func toDistribution(counts map[string]int, total int) []dto.DistributionEntry {
	entries := make([]dto.DistributionEntry, 0, len(counts))
	for value, count := range counts {
		entries = append(entries, dto.DistributionEntry{
			Value:      value,
			Count:      count,
			Percentage: percentage(count, total),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Value < entries[j].Value
	})
	return entries
}

// normalizeGender folds the gender spellings the clients send
// ("M", "Masculino", "F", "Femenino") onto single letters
func normalizeGender(gender string) string {
	g := strings.ToLower(strings.TrimSpace(gender))
	switch {
	case g == "m" || strings.HasPrefix(g, "masc"):
		return "m"
	case g == "f" || strings.HasPrefix(g, "fem"):
		return "f"
	}
	return ""
}

// percentage returns the share rounded to one decimal place
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
