package model

import "time"

// Category groups students by age or grade (e.g. "Preschool", "Grades 1-2").
type Category struct {
	ID        uint   `gorm:"primarykey;autoIncrement"`
	Name      string `gorm:"uniqueIndex;size:64;not null"`
	Color     string `gorm:"size:16;not null;default:''"`
	MinGrade  int    `gorm:"not null;default:0"`
	MaxGrade  int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
