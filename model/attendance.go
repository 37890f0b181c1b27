package model

import "time"

// Attendance is one student's check-in record for one day.
type Attendance struct {
	ID         uint       `gorm:"primarykey;autoIncrement"`
	EventID    uint       `gorm:"not null;index"`
	StudentID  uint       `gorm:"not null;uniqueIndex:idx_attendance_student_day"`
	Day        time.Time  `gorm:"type:date;not null;uniqueIndex:idx_attendance_student_day;index"`
	CheckInAt  time.Time  `gorm:"not null"`
	CheckInBy  uint       `gorm:"not null"`
	CheckOutAt *time.Time
	CheckOutBy *uint
	PickupBy   string `gorm:"size:128"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
