package attendance

import (
	"context"
	"time"

	"github.com/khanghh/vbs/model"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	WithTx(tx *gorm.DB) AttendanceRepository
	First(ctx context.Context, id uint) (*model.Attendance, error)
	FirstByStudentDay(ctx context.Context, studentID uint, day time.Time) (*model.Attendance, error)
	ListByEventDay(ctx context.Context, eventID uint, day time.Time) ([]*model.Attendance, error)
	Create(ctx context.Context, record *model.Attendance) error
	Updates(ctx context.Context, id uint, columns map[string]interface{}) error
}

type attendanceRepository struct {
	db *gorm.DB
}

func (r *attendanceRepository) WithTx(tx *gorm.DB) AttendanceRepository {
	return NewAttendanceRepository(tx)
}

func (r *attendanceRepository) First(ctx context.Context, id uint) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	return &record, err
}

func (r *attendanceRepository) FirstByStudentDay(ctx context.Context, studentID uint, day time.Time) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.WithContext(ctx).Where("student_id = ? AND day = ?", studentID, day).First(&record).Error
	return &record, err
}

func (r *attendanceRepository) ListByEventDay(ctx context.Context, eventID uint, day time.Time) ([]*model.Attendance, error) {
	var records []*model.Attendance
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND day = ?", eventID, day).
		Order("check_in_at").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepository) Create(ctx context.Context, record *model.Attendance) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepository) Updates(ctx context.Context, id uint, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Attendance{}).Where("id = ?", id).Updates(columns).Error
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}
