package reports

import (
	"context"

	"github.com/khanghh/vbs/internal/common"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/model"
	"github.com/khanghh/vbs/params"
)

type CategoryLister interface {
	List(ctx context.Context) ([]*model.Category, error)
}

type CategoryTotal struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Count int64  `json:"count"`
}

type DayTotal struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// Summary is the dashboard report for one event.
type Summary struct {
	EventID    uint            `json:"eventId"`
	Year       int             `json:"year"`
	Theme      string          `json:"theme"`
	Students   int64           `json:"students"`
	ByCategory []CategoryTotal `json:"byCategory"`
	Attendance []DayTotal      `json:"attendance"`
}

type ReportService struct {
	guard      *guard.Guard
	repo       ReportRepository
	categories CategoryLister
}

func (s *ReportService) Summary(ctx context.Context) (*Summary, error) {
	if _, err := s.guard.RequireRole(ctx, model.RoleViewer); err != nil {
		return nil, err
	}
	event, err := s.guard.ActiveEvent(ctx)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountStudents(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.repo.CountStudentsByCategory(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	byDay, err := s.repo.CountAttendanceByDay(ctx, event.ID, params.ReportAttendanceDaysMax)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		EventID:    event.ID,
		Year:       event.Year,
		Theme:      event.Theme,
		Students:   total,
		ByCategory: make([]CategoryTotal, 0, len(byCategory)),
		Attendance: make([]DayTotal, 0, len(byDay)),
	}
	counts := make(map[uint]int64, len(byCategory))
	var uncategorized int64
	for _, row := range byCategory {
		if row.CategoryID == nil {
			uncategorized += row.Count
			continue
		}
		counts[*row.CategoryID] = row.Count
	}
	for _, c := range categories {
		summary.ByCategory = append(summary.ByCategory, CategoryTotal{Name: c.Name, Color: c.Color, Count: counts[c.ID]})
	}
	if uncategorized > 0 {
		summary.ByCategory = append(summary.ByCategory, CategoryTotal{Name: "Uncategorized", Count: uncategorized})
	}
	for _, row := range byDay {
		summary.Attendance = append(summary.Attendance, DayTotal{Day: common.FormatDay(row.Day), Count: row.Count})
	}
	return summary, nil
}

func NewReportService(g *guard.Guard, repo ReportRepository, categories CategoryLister) *ReportService {
	return &ReportService{
		guard:      g,
		repo:       repo,
		categories: categories,
	}
}
