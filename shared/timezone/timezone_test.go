package timezone_test

import (
	"testing"
	"time"

	"houserental/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "", want: "UTC"},
		{name: "Not/AZone", want: "UTC"},
		{name: "UTC", want: "UTC"},
		{name: "Asia/Jakarta", want: "Asia/Jakarta"},
	}

	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.Load(tt.name).String())
		})
	}
}

func TestNowAndFormat(t *testing.T) {
	now := timezone.Now()
	assert.False(t, now.IsZero())
	assert.Equal(t, now.Location(), timezone.ToAppTime(time.Now().UTC()).Location())

	instant := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	parsed, err := time.Parse(time.RFC3339, timezone.Format(instant, time.RFC3339))

	require.NoError(t, err)
	assert.True(t, parsed.Equal(instant))
}

func TestToday(t *testing.T) {
	today := timezone.Today()
	now := timezone.Now()

	assert.Equal(t, time.UTC, today.Location())
	assert.Equal(t, time.Duration(0), today.Sub(today.Truncate(24*time.Hour)))
	assert.Equal(t, now.Day(), today.Day())
}

func TestParseDate(t *testing.T) {
	date, err := timezone.ParseDate("2025-06-12")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), date)

	_, err = timezone.ParseDate("12/06/2025")
	assert.Error(t, err)
}
