package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"birthday-home/internal/clock"
	"birthday-home/internal/model"

	"gorm.io/gorm"
)

// ScheduleService picks the greeting/PS text whose [start, end) window
// contains the current time of day. Windows compare as plain "HH:MM" strings,
// so a window crossing midnight (start > end) never matches; that quirk is
// kept as-is.
type ScheduleService struct {
	db        *gorm.DB
	clock     clock.Clock
	fallbacks map[string]string
}

func NewScheduleService(db *gorm.DB, clk clock.Clock, greetingFallback, psFallback string) *ScheduleService {
	return &ScheduleService{
		db:    db,
		clock: clk,
		fallbacks: map[string]string{
			model.KindGreeting: greetingFallback,
			model.KindPS:       psFallback,
		},
	}
}

// Current returns the active text for kind at now. When several windows
// match, the most recently created row wins; when none match, the configured
// fallback is returned.
func (s *ScheduleService) Current(ctx context.Context, kind string, now time.Time) (string, error) {
	if !validKind(kind) {
		return "", ErrInvalidInput
	}
	hhmm := now.Format("15:04")

	var row model.ScheduledMessage
	err := s.db.WithContext(ctx).
		Where("active = ? AND kind = ? AND start_time <= ? AND end_time > ?", true, kind, hhmm, hhmm).
		Order("created_at DESC, id DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.fallbacks[kind], nil
	}
	if err != nil {
		return "", fmt.Errorf("load scheduled message: %w", err)
	}
	return row.Content, nil
}

// --- admin CRUD; the core service above only ever reads ---

func (s *ScheduleService) Create(ctx context.Context, req model.ScheduledMessageRequest) (*model.ScheduledMessage, error) {
	if err := validateScheduled(req); err != nil {
		return nil, err
	}
	row := model.ScheduledMessage{
		Kind:      req.Kind,
		Content:   req.Content,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Active:    true,
		CreatedAt: s.clock.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("insert scheduled message: %w", err)
	}
	return &row, nil
}

func (s *ScheduleService) Update(ctx context.Context, id int, req model.ScheduledMessageRequest) error {
	if err := validateScheduled(req); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Model(&model.ScheduledMessage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"kind":       req.Kind,
			"content":    req.Content,
			"start_time": req.StartTime,
			"end_time":   req.EndTime,
		})
	if res.Error != nil {
		return fmt.Errorf("update scheduled message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ScheduleService) ToggleActive(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).
		Model(&model.ScheduledMessage{}).
		Where("id = ?", id).
		Update("active", gorm.Expr("NOT active"))
	if res.Error != nil {
		return fmt.Errorf("toggle scheduled message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ScheduleService) Delete(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ScheduledMessage{})
	if res.Error != nil {
		return fmt.Errorf("delete scheduled message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ScheduleService) List(ctx context.Context) ([]model.ScheduledMessage, error) {
	var rows []model.ScheduledMessage
	err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows).Error
	return rows, err
}

func validKind(kind string) bool {
	return kind == model.KindGreeting || kind == model.KindPS
}

func validateScheduled(req model.ScheduledMessageRequest) error {
	if !validKind(req.Kind) || req.Content == "" {
		return ErrInvalidInput
	}
	if !validHHMM(req.StartTime) || !validHHMM(req.EndTime) {
		return ErrInvalidInput
	}
	return nil
}

func validHHMM(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
