package model

import "time"

// ScheduleSession is a block on the event timetable (opening, crafts, snack...).
type ScheduleSession struct {
	ID         uint      `gorm:"primarykey;autoIncrement"`
	EventID    uint      `gorm:"not null;index"`
	CategoryID *uint     `gorm:"index"`
	Title      string    `gorm:"size:128;not null"`
	Location   string    `gorm:"size:128"`
	Day        time.Time `gorm:"type:date;not null;index"`
	StartTime  string    `gorm:"size:5;not null"` // HH:MM
	EndTime    string    `gorm:"size:5;not null"` // HH:MM
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
