package model

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Models lists every table, in dependency order for AutoMigrate.
var Models = []interface{}{
	&User{},
	&Event{},
	&Category{},
	&Student{},
	&ScheduleSession{},
	&Attendance{},
	&Settings{},
	&AuditEntry{},
}

var idNode = mustNewNode(1)

func mustNewNode(node int64) *snowflake.Node {
	n, err := snowflake.NewNode(node)
	if err != nil {
		panic(err)
	}
	return n
}

// GenerateID returns a snowflake id for user rows. Other tables use
// auto-increment keys.
func GenerateID() uint {
	return uint(idNode.Generate().Int64())
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
