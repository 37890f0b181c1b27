package common

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	require.True(t, IsDuplicateKey(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '2026' for key 'idx_event_year'"}))
	require.True(t, IsDuplicateKey(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	require.False(t, IsDuplicateKey(&mysql.MySQLError{Number: 1146}))
	require.False(t, IsDuplicateKey(errors.New("boom")))
	require.False(t, IsDuplicateKey(nil))
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay(" 2026-06-15 ")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), day)
	require.Equal(t, "2026-06-15", FormatDay(day))

	_, err = ParseDay("06/15/2026")
	require.Error(t, err)
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("CDT", -5*3600)
	got := Day(time.Date(2026, 6, 15, 22, 30, 0, 0, loc))
	require.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret(32)
	require.NoError(t, err)
	require.Len(t, a, 32)
	b, err := GenerateSecret(32)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
