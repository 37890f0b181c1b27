package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditEntry is an append-only record of a privileged change.
type AuditEntry struct {
	ID           uint64         `gorm:"primaryKey;autoIncrement"`
	EntryID      string         `gorm:"size:36;not null;uniqueIndex"`
	UserID       uint           `gorm:"index;not null"`
	Action       string         `gorm:"size:64;not null;index"`
	ResourceType string         `gorm:"size:32;not null;index"`
	ResourceID   uint           `gorm:"index"`
	Details      datatypes.JSON `gorm:"type:json"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
}

func (AuditEntry) TableName() string {
	return "audit"
}
