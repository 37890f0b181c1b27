package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a staff account able to sign in to the admin site.
type User struct {
	ID        uint   `gorm:"primarykey"`
	Email     string `gorm:"uniqueIndex;size:256;not null"`
	FullName  string `gorm:"size:64;not null"`
	Password  string `gorm:"size:64;not null"`
	Role      Role   `gorm:"type:varchar(16);not null;default:VIEWER"`
	Disabled  bool   `gorm:"default:false;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == 0 {
		u.ID = GenerateID()
	}
	return nil
}
