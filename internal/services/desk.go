package services

import (
	"fmt"
	"time"

	"lending-system/pkg/config"
)

// DeskSchedule — часы работы пункта выдачи. Выдача и прием оборудования
// возможны только в рабочие часы и вне обеденного перерыва; сами заявки
// можно подавать круглосуточно.
type DeskSchedule struct {
	openFrom   int // минуты от полуночи
	openUntil  int
	lunchFrom  int
	lunchUntil int
}

func NewDeskSchedule(cfg config.LendingConfig) (*DeskSchedule, error) {
	openFrom, err := parseClock(cfg.DeskOpenFrom)
	if err != nil {
		return nil, fmt.Errorf("некорректное время открытия %q: %w", cfg.DeskOpenFrom, err)
	}
	openUntil, err := parseClock(cfg.DeskOpenUntil)
	if err != nil {
		return nil, fmt.Errorf("некорректное время закрытия %q: %w", cfg.DeskOpenUntil, err)
	}
	lunchFrom, err := parseClock(cfg.LunchBreakFrom)
	if err != nil {
		return nil, fmt.Errorf("некорректное начало обеда %q: %w", cfg.LunchBreakFrom, err)
	}
	lunchUntil, err := parseClock(cfg.LunchBreakUntil)
	if err != nil {
		return nil, fmt.Errorf("некорректный конец обеда %q: %w", cfg.LunchBreakUntil, err)
	}
	if openFrom >= openUntil {
		return nil, fmt.Errorf("время открытия %q не раньше закрытия %q", cfg.DeskOpenFrom, cfg.DeskOpenUntil)
	}
	return &DeskSchedule{
		openFrom:   openFrom,
		openUntil:  openUntil,
		lunchFrom:  lunchFrom,
		lunchUntil: lunchUntil,
	}, nil
}

// IsOpenAt сообщает, работает ли пункт выдачи в указанный момент.
func (d *DeskSchedule) IsOpenAt(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	if m < d.openFrom || m >= d.openUntil {
		return false
	}
	if m >= d.lunchFrom && m < d.lunchUntil {
		return false
	}
	return true
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
