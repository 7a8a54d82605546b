package services

import (
	"testing"
	"time"

	"lending-system/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLendingConfig() config.LendingConfig {
	return config.LendingConfig{
		DeskOpenFrom:    "08:30",
		DeskOpenUntil:   "16:30",
		LunchBreakFrom:  "12:00",
		LunchBreakUntil: "13:00",
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func TestDeskSchedule_IsOpenAt(t *testing.T) {
	desk, err := NewDeskSchedule(testLendingConfig())
	require.NoError(t, err)

	testCases := []struct {
		name     string
		moment   time.Time
		expected bool
	}{
		{"до открытия", at(8, 0), false},
		{"ровно в открытие", at(8, 30), true},
		{"утро", at(10, 15), true},
		{"последняя минута перед обедом", at(11, 59), true},
		{"начало обеда", at(12, 0), false},
		{"середина обеда", at(12, 30), false},
		{"конец обеда", at(13, 0), true},
		{"после обеда", at(15, 0), true},
		{"ровно в закрытие", at(16, 30), false},
		{"вечер", at(20, 0), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, desk.IsOpenAt(tc.moment))
		})
	}
}

func TestNewDeskSchedule_InvalidConfig(t *testing.T) {
	cfg := testLendingConfig()
	cfg.DeskOpenFrom = "26:00"
	_, err := NewDeskSchedule(cfg)
	assert.Error(t, err)

	cfg = testLendingConfig()
	cfg.DeskOpenFrom = "17:00"
	cfg.DeskOpenUntil = "09:00"
	_, err = NewDeskSchedule(cfg)
	assert.Error(t, err, "открытие позже закрытия должно отклоняться")
}
