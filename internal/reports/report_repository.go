package reports

import (
	"context"
	"time"

	"github.com/khanghh/vbs/model"
	"gorm.io/gorm"
)

type CategoryCount struct {
	CategoryID *uint
	Count      int64
}

type DayCount struct {
	Day   time.Time
	Count int64
}

type ReportRepository interface {
	CountStudents(ctx context.Context, eventID uint) (int64, error)
	CountStudentsByCategory(ctx context.Context, eventID uint) ([]CategoryCount, error)
	CountAttendanceByDay(ctx context.Context, eventID uint, limit int) ([]DayCount, error)
}

type reportRepository struct {
	db *gorm.DB
}

func (r *reportRepository) CountStudents(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func (r *reportRepository) CountStudentsByCategory(ctx context.Context, eventID uint) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).Model(&model.Student{}).
		Select("category_id, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Group("category_id").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) CountAttendanceByDay(ctx context.Context, eventID uint, limit int) ([]DayCount, error) {
	var rows []DayCount
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Select("day, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Group("day").
		Order("day").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}
