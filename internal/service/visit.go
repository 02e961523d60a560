package service

import (
	"context"
	"fmt"

	"birthday-home/internal/clock"
	"birthday-home/internal/logger"
	"birthday-home/internal/model"

	"gorm.io/gorm"
)

// VisitLogger records anonymous landing-page hits (ip, user agent, page) for
// the visit analytics table.
type VisitLogger struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewVisitLogger(db *gorm.DB, clk clock.Clock) *VisitLogger {
	return &VisitLogger{db: db, clock: clk}
}

// Record is fire-and-forget, same contract as ActivityLogger.Record.
func (l *VisitLogger) Record(ip, userAgent, page string) {
	v := model.Visit{IP: ip, UserAgent: userAgent, Page: page, VisitTime: l.clock.Now()}
	if err := l.db.Create(&v).Error; err != nil {
		logger.Warn("visit log failed", "page", page, "err", err)
	}
}

// CleanupByUserAgent deletes visits whose user agent contains the given
// substring. Out-of-band maintenance, admin only. An empty substring would
// wipe the table, so it is rejected.
func (l *VisitLogger) CleanupByUserAgent(ctx context.Context, contains string) (int64, error) {
	if contains == "" {
		return 0, ErrInvalidInput
	}
	res := l.db.WithContext(ctx).
		Where("user_agent LIKE ?", "%"+contains+"%").
		Delete(&model.Visit{})
	if res.Error != nil {
		return 0, fmt.Errorf("cleanup visits: %w", res.Error)
	}
	return res.RowsAffected, nil
}
