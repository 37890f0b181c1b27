package model

import "time"

type Student struct {
	ID            uint       `gorm:"primarykey;autoIncrement"`
	EventID       uint       `gorm:"not null;index"`
	CategoryID    *uint      `gorm:"index"`
	FirstName     string     `gorm:"size:64;not null"`
	LastName      string     `gorm:"size:64;not null"`
	Grade         int        `gorm:"not null;default:0"`
	BirthDate     *time.Time `gorm:"type:date"`
	GuardianName  string     `gorm:"size:128;not null"`
	GuardianPhone string     `gorm:"size:32;not null"`
	GuardianEmail string     `gorm:"size:256"`
	Allergies     string     `gorm:"size:512"`
	MedicalNotes  string     `gorm:"size:1024"`
	PhotoConsent  bool       `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
