package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBorrowing_Active(t *testing.T) {
	returned := "2026-08-20"
	blank := "  "

	assert.True(t, Borrowing{}.Active())
	assert.True(t, Borrowing{ReturnedAt: &blank}.Active())
	assert.False(t, Borrowing{ReturnedAt: &returned}.Active())
}

func TestBorrowing_Overdue(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	returned := "2026-08-20"

	open := Borrowing{DueAt: "2026-08-15"}
	assert.True(t, open.Overdue(now))

	// The due day itself and the day after still count as on time.
	assert.False(t, Borrowing{DueAt: "2026-09-01"}.Overdue(now))

	closed := Borrowing{DueAt: "2026-08-15", ReturnedAt: &returned}
	assert.False(t, closed.Overdue(now))

	assert.False(t, Borrowing{DueAt: "not a date"}.Overdue(now))
	assert.False(t, Borrowing{}.Overdue(now))
}

func TestParseDate_Layouts(t *testing.T) {
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), parseDate("2026-08-30"))
	assert.Equal(t,
		time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC),
		parseDate("2026-08-30T10:30:00Z"))
	assert.True(t, parseDate("").IsZero())
	assert.True(t, parseDate("30/08/2026").IsZero())
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2026-08-30", FormatDate(time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)))
}
