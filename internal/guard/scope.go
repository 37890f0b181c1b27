package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/khanghh/vbs/model"
	"gorm.io/gorm"
)

type ResourceKind string

const (
	ResourceStudent         ResourceKind = "student"
	ResourceScheduleSession ResourceKind = "schedule_session"
	ResourceAttendance      ResourceKind = "attendance"
	ResourceEvent           ResourceKind = "event"
	ResourceCategory        ResourceKind = "category"
	ResourceUser            ResourceKind = "user"
	ResourceSettings        ResourceKind = "settings"
)

var kindLabels = map[ResourceKind]string{
	ResourceStudent:         "Student",
	ResourceScheduleSession: "Session",
	ResourceAttendance:      "Attendance record",
	ResourceEvent:           "Event",
	ResourceCategory:        "Category",
	ResourceUser:            "User",
	ResourceSettings:        "Settings",
}

func (k ResourceKind) Label() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return string(k)
}

type scopeRepository struct {
	db *gorm.DB
}

func scopedModel(kind ResourceKind) (any, error) {
	switch kind {
	case ResourceStudent:
		return &model.Student{}, nil
	case ResourceScheduleSession:
		return &model.ScheduleSession{}, nil
	case ResourceAttendance:
		return &model.Attendance{}, nil
	}
	return nil, fmt.Errorf("resource kind %q is not event scoped", kind)
}

func (r *scopeRepository) EventIDOf(ctx context.Context, kind ResourceKind, id uint) (uint, bool, error) {
	m, err := scopedModel(kind)
	if err != nil {
		return 0, false, err
	}
	var row struct {
		EventID uint
	}
	err = r.db.WithContext(ctx).Model(m).Select("event_id").Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return row.EventID, true, nil
}

func NewScopeRepository(db *gorm.DB) ScopeLookup {
	return &scopeRepository{db: db}
}
