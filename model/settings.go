package model

import "time"

// Settings holds site branding. There is a single row.
type Settings struct {
	ID           uint   `gorm:"primarykey"`
	SiteName     string `gorm:"size:128;not null"`
	PrimaryColor string `gorm:"size:16;not null"`
	LogoURL      string `gorm:"size:512"`
	ContactEmail string `gorm:"size:256"`
	UpdatedAt    time.Time
}
