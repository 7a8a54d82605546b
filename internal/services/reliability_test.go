package services

import (
	"testing"
	"time"

	"lending-system/internal/entities"
	"lending-system/internal/repositories"
	"lending-system/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestComputeReliabilityScore(t *testing.T) {
	const w1, w2 = 0.7, 0.3

	t.Run("идеальный заемщик", func(t *testing.T) {
		assert.InDelta(t, 100, ComputeReliabilityScore(1, 0, w1, w2), 1e-9)
	})

	t.Run("худший случай", func(t *testing.T) {
		assert.InDelta(t, 0, ComputeReliabilityScore(0, 1, w1, w2), 1e-9)
	})

	t.Run("смешанная история", func(t *testing.T) {
		// 100 * (0.7*0.5 + 0.3*(1-0.2)) = 35 + 24 = 59
		assert.InDelta(t, 59, ComputeReliabilityScore(0.5, 0.2, w1, w2), 1e-9)
	})

	t.Run("результат зажат в [0,100]", func(t *testing.T) {
		assert.Equal(t, float64(100), ComputeReliabilityScore(2, 0, w1, w2))
		assert.Equal(t, float64(0), ComputeReliabilityScore(-1, 2, w1, w2))
	})
}

func TestGradeForScore(t *testing.T) {
	assert.Equal(t, entities.ReliabilityGradeExcellent, GradeForScore(100))
	assert.Equal(t, entities.ReliabilityGradeExcellent, GradeForScore(90))
	assert.Equal(t, entities.ReliabilityGradeGood, GradeForScore(89.9))
	assert.Equal(t, entities.ReliabilityGradeGood, GradeForScore(75))
	assert.Equal(t, entities.ReliabilityGradeFair, GradeForScore(74.9))
	assert.Equal(t, entities.ReliabilityGradeFair, GradeForScore(50))
	assert.Equal(t, entities.ReliabilityGradePoor, GradeForScore(49.9))
	assert.Equal(t, entities.ReliabilityGradePoor, GradeForScore(0))
}

func TestReliabilityService_BuildRecord(t *testing.T) {
	svc := &ReliabilityService{
		cfg: config.LendingConfig{OnTimeWeight: 0.7, NoShowWeight: 0.3},
	}
	computedAt := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("без истории дается нейтральный балл", func(t *testing.T) {
		record := svc.buildRecord(&repositories.ReliabilityCounts{}, 7, computedAt)

		assert.Equal(t, uint64(7), record.UserID)
		assert.Equal(t, neutralReliabilityScore, record.Score)
		assert.Equal(t, entities.ReliabilityGradeGood, record.Grade)
	})

	t.Run("история учитывается в ставках", func(t *testing.T) {
		counts := &repositories.ReliabilityCounts{
			TotalFinished: 10,
			OnTimeReturns: 8,
			LateReturns:   2,
			NoShows:       1,
			ApprovedTotal: 11,
		}
		record := svc.buildRecord(counts, 7, computedAt)

		assert.InDelta(t, 0.8, record.OnTimeRate, 1e-9)
		assert.InDelta(t, 1.0/11.0, record.NoShowRate, 1e-9)
		expected := ComputeReliabilityScore(record.OnTimeRate, record.NoShowRate, 0.7, 0.3)
		assert.InDelta(t, expected, record.Score, 1e-9)
		assert.Equal(t, GradeForScore(expected), record.Grade)
	})

	t.Run("только неявки без завершенных выдач", func(t *testing.T) {
		counts := &repositories.ReliabilityCounts{
			NoShows:       2,
			ApprovedTotal: 2,
		}
		record := svc.buildRecord(counts, 7, computedAt)

		// on_time_rate = 0, no_show_rate = 1 -> score 0
		assert.Equal(t, float64(0), record.Score)
		assert.Equal(t, entities.ReliabilityGradePoor, record.Grade)
	})
}
