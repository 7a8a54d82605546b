package services

import (
	"testing"
	"time"

	"lending-system/internal/entities"

	"github.com/stretchr/testify/assert"
)

func TestOverlapDays(t *testing.T) {
	windowStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC) // 30 дней

	day := func(d int) time.Time {
		return windowStart.AddDate(0, 0, d)
	}

	t.Run("интервал целиком внутри окна", func(t *testing.T) {
		assert.InDelta(t, 5, OverlapDays(day(3), day(8), windowStart, windowEnd), 1e-9)
	})

	t.Run("интервал начался до окна", func(t *testing.T) {
		assert.InDelta(t, 4, OverlapDays(day(-10), day(4), windowStart, windowEnd), 1e-9)
	})

	t.Run("интервал выходит за конец окна", func(t *testing.T) {
		assert.InDelta(t, 5, OverlapDays(day(25), day(40), windowStart, windowEnd), 1e-9)
	})

	t.Run("оборудование еще на руках", func(t *testing.T) {
		// Нулевой to трактуется как открытый интервал до конца окна
		assert.InDelta(t, 10, OverlapDays(day(20), time.Time{}, windowStart, windowEnd), 1e-9)
	})

	t.Run("интервал вне окна", func(t *testing.T) {
		assert.Zero(t, OverlapDays(day(-20), day(-10), windowStart, windowEnd))
		assert.Zero(t, OverlapDays(day(40), day(50), windowStart, windowEnd))
	})

	t.Run("неполные сутки", func(t *testing.T) {
		from := day(2)
		to := from.Add(36 * time.Hour)
		assert.InDelta(t, 1.5, OverlapDays(from, to, windowStart, windowEnd), 1e-9)
	})
}

func TestClassifyUtilization(t *testing.T) {
	const underused, overused = 0.15, 0.75

	assert.Equal(t, entities.UtilizationUnderused, ClassifyUtilization(0, underused, overused))
	assert.Equal(t, entities.UtilizationUnderused, ClassifyUtilization(0.1499, underused, overused))
	assert.Equal(t, entities.UtilizationNormal, ClassifyUtilization(0.15, underused, overused))
	assert.Equal(t, entities.UtilizationNormal, ClassifyUtilization(0.5, underused, overused))
	assert.Equal(t, entities.UtilizationNormal, ClassifyUtilization(0.75, underused, overused))
	assert.Equal(t, entities.UtilizationOverused, ClassifyUtilization(0.7501, underused, overused))
	assert.Equal(t, entities.UtilizationOverused, ClassifyUtilization(1, underused, overused))
}
