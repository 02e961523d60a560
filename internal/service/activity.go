package service

import (
	"context"

	"birthday-home/internal/clock"
	"birthday-home/internal/logger"
	"birthday-home/internal/model"

	"gorm.io/gorm"
)

// ActivityLogger appends one row per page access. Record never fails the
// calling request: an insert error is reported to the operational log and
// dropped.
type ActivityLogger struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewActivityLogger(db *gorm.DB, clk clock.Clock) *ActivityLogger {
	return &ActivityLogger{db: db, clock: clk}
}

// Record appends an activity row for label (a birthday token or a synthetic
// label like "unknown-<token>").
func (l *ActivityLogger) Record(label, page string) {
	rec := model.Activity{
		ID:         model.NewID(),
		Birthday:   label,
		Page:       page,
		AccessTime: l.clock.Now(),
	}
	if err := l.db.Create(&rec).Error; err != nil {
		logger.Warn("activity log failed", "page", page, "err", err)
	}
}

// RecentFor lists the newest n activity rows for one user, for the dashboard.
func (l *ActivityLogger) RecentFor(ctx context.Context, birthday string, n int) ([]model.Activity, error) {
	var rows []model.Activity
	err := l.db.WithContext(ctx).
		Where("birthday = ?", birthday).
		Order("access_time DESC").
		Limit(n).
		Find(&rows).Error
	return rows, err
}
