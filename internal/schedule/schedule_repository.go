package schedule

import (
	"context"

	"github.com/khanghh/vbs/model"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	WithTx(tx *gorm.DB) ScheduleRepository
	ListByEvent(ctx context.Context, eventID uint) ([]*model.ScheduleSession, error)
	Create(ctx context.Context, session *model.ScheduleSession) error
	Delete(ctx context.Context, id uint) error
}

type scheduleRepository struct {
	db *gorm.DB
}

func (r *scheduleRepository) WithTx(tx *gorm.DB) ScheduleRepository {
	return NewScheduleRepository(tx)
}

func (r *scheduleRepository) ListByEvent(ctx context.Context, eventID uint) ([]*model.ScheduleSession, error) {
	var sessions []*model.ScheduleSession
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("day, start_time").
		Find(&sessions).Error
	return sessions, err
}

func (r *scheduleRepository) Create(ctx context.Context, session *model.ScheduleSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *scheduleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ScheduleSession{}).Error
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}
