package events

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/khanghh/vbs/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// openTestDB connects to VBS_TEST_MYSQL_DSN and skips the test when unset.
func openTestDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("VBS_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("VBS_TEST_MYSQL_DSN not set")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "evt_test_",
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	t.Cleanup(func() {
		db.Exec("DELETE FROM evt_test_attendance")
		db.Exec("DELETE FROM evt_test_schedule_session")
		db.Exec("DELETE FROM evt_test_student")
		db.Exec("DELETE FROM evt_test_event")
	})
	return db
}

func TestEventRepositorySetActive(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	day := time.Date(2026, 7, 13, 0, 0, 0, 0, time.UTC)
	older := &model.Event{Year: 1901, Theme: "Old", StartDate: day, EndDate: day, IsActive: true}
	newer := &model.Event{Year: 1902, Theme: "New", StartDate: day, EndDate: day}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	require.NoError(t, repo.SetActive(ctx, newer.ID))
	active, err := repo.FindActive(ctx, 2)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, newer.ID, active[0].ID)

	require.ErrorIs(t, repo.SetActive(ctx, newer.ID+1000), gorm.ErrRecordNotFound)
	active, err = repo.FindActive(ctx, 2)
	require.NoError(t, err)
	require.Len(t, active, 1)
}

func TestEventRepositoryDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	day := time.Date(2026, 7, 13, 0, 0, 0, 0, time.UTC)
	event := &model.Event{Year: 1903, Theme: "Gone", StartDate: day, EndDate: day}
	require.NoError(t, repo.Create(ctx, event))
	student := &model.Student{EventID: event.ID, FirstName: "Ada", LastName: "L", GuardianName: "G", GuardianPhone: "1"}
	require.NoError(t, db.Create(student).Error)
	require.NoError(t, db.Create(&model.Attendance{EventID: event.ID, StudentID: student.ID, Day: day, CheckInAt: day, CheckInBy: 1}).Error)

	require.NoError(t, repo.Delete(ctx, event.ID))
	var count int64
	require.NoError(t, db.Model(&model.Student{}).Where("event_id = ?", event.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&model.Attendance{}).Where("event_id = ?", event.ID).Count(&count).Error)
	require.Zero(t, count)
}
