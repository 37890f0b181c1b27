package model

import "time"

// Event is one yearly VBS program. At most one event is active at a time.
type Event struct {
	ID        uint      `gorm:"primarykey;autoIncrement"`
	Year      int       `gorm:"uniqueIndex;not null"`
	Theme     string    `gorm:"size:128;not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	IsActive  bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
