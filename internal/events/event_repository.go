package events

import (
	"context"

	"github.com/khanghh/vbs/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository interface {
	WithTx(tx *gorm.DB) EventRepository
	First(ctx context.Context, id uint) (*model.Event, error)
	FindActive(ctx context.Context, limit int) ([]*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	Create(ctx context.Context, event *model.Event) error
	Updates(ctx context.Context, id uint, columns map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	SetActive(ctx context.Context, id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

func (r *eventRepository) WithTx(tx *gorm.DB) EventRepository {
	return NewEventRepository(tx)
}

func (r *eventRepository) First(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	return &event, err
}

func (r *eventRepository) FindActive(ctx context.Context, limit int) ([]*model.Event, error) {
	var events []*model.Event
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Limit(limit).Find(&events).Error
	return events, err
}

func (r *eventRepository) List(ctx context.Context) ([]*model.Event, error) {
	var events []*model.Event
	err := r.db.WithContext(ctx).Order("year DESC").Find(&events).Error
	return events, err
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) Updates(ctx context.Context, id uint, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Event{}).Where("id = ?", id).Updates(columns).Error
}

// Delete removes the event together with its students, schedule and attendance.
func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&model.Attendance{}, &model.ScheduleSession{}, &model.Student{}} {
			if err := tx.Where("event_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&model.Event{}).Error
	})
}

// SetActive deactivates every other event and activates id in one
// transaction, so readers never observe two active events.
func (r *eventRepository) SetActive(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active []model.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("is_active = ? OR id = ?", true, id).
			Find(&active).Error
		if err != nil {
			return err
		}
		found := false
		for _, e := range active {
			if e.ID == id {
				found = true
			}
		}
		if !found {
			return gorm.ErrRecordNotFound
		}
		err = tx.Model(&model.Event{}).
			Where("is_active = ? AND id <> ?", true, id).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
		return tx.Model(&model.Event{}).Where("id = ?", id).Update("is_active", true).Error
	})
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}
