package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"birthday-home/internal/clock"
	"birthday-home/internal/model"

	"gorm.io/gorm"
)

var (
	// ErrInvalidInput means required content was empty.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoBottleAvailable means nobody else has thrown a bottle yet; the
	// caller may retry the same day.
	ErrNoBottleAvailable = errors.New("no bottle available")
)

// BottleService implements the drift-bottle exchange: anyone may throw a
// bottle at any time, and each user draws at most one bottle per calendar day.
type BottleService struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewBottleService(db *gorm.DB, clk clock.Clock) *BottleService {
	return &BottleService{db: db, clock: clk}
}

// Submit creates a new bottle. Text is required here, unlike the message
// board where an attachment alone suffices.
func (s *BottleService) Submit(ctx context.Context, birthday, text, filePath string) (*model.Bottle, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}
	b := model.Bottle{
		ID:        model.NewID(),
		Birthday:  birthday,
		Text:      text,
		FilePath:  filePath,
		CreatedAt: s.clock.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, fmt.Errorf("insert bottle: %w", err)
	}
	return &b, nil
}

// DrawOrFetch returns today's bottle for the caller. If a view already exists
// for (caller, today) the same bottle is returned again; otherwise one bottle
// authored by someone else is picked uniformly at random and the view is
// recorded. When no eligible bottle exists no view is written, so a later call
// the same day draws again.
func (s *BottleService) DrawOrFetch(ctx context.Context, birthday string, today time.Time) (*model.Bottle, error) {
	day := clock.Date(today)

	var view model.BottleView
	err := s.db.WithContext(ctx).
		Where("birthday = ? AND view_date = ?", birthday, day).
		First(&view).Error
	if err == nil {
		return s.bottleByID(ctx, view.BottleID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load bottle view: %w", err)
	}

	// the author filter is structural: own bottles are never eligible
	eligible := s.db.WithContext(ctx).
		Model(&model.Bottle{}).
		Where("birthday != ?", birthday)

	var count int64
	if err := eligible.Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count bottles: %w", err)
	}
	if count == 0 {
		return nil, ErrNoBottleAvailable
	}

	var b model.Bottle
	err = s.db.WithContext(ctx).
		Where("birthday != ?", birthday).
		Order("id").
		Offset(rand.IntN(int(count))).
		First(&b).Error
	if err != nil {
		return nil, fmt.Errorf("pick bottle: %w", err)
	}

	view = model.BottleView{ID: model.NewID(), Birthday: birthday, BottleID: b.ID, ViewDate: day}
	if err := s.db.WithContext(ctx).Create(&view).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// a concurrent draw for the same day won; its bottle is
			// the one on record
			return s.fetchRecorded(ctx, birthday, day)
		}
		return nil, fmt.Errorf("record bottle view: %w", err)
	}
	return &b, nil
}

// CountPickedUp reports how many times bottles thrown by this user were drawn
// by others.
func (s *BottleService) CountPickedUp(ctx context.Context, birthday string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.BottleView{}).
		Joins("JOIN bottles ON bottles.id = bottle_views.bottle_id").
		Where("bottles.birthday = ?", birthday).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count picked up: %w", err)
	}
	return n, nil
}

func (s *BottleService) CountByAuthor(ctx context.Context, birthday string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.Bottle{}).
		Where("birthday = ?", birthday).
		Count(&n).Error
	return n, err
}

func (s *BottleService) bottleByID(ctx context.Context, id string) (*model.Bottle, error) {
	var b model.Bottle
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, fmt.Errorf("load bottle: %w", err)
	}
	return &b, nil
}

func (s *BottleService) fetchRecorded(ctx context.Context, birthday, day string) (*model.Bottle, error) {
	var view model.BottleView
	err := s.db.WithContext(ctx).
		Where("birthday = ? AND view_date = ?", birthday, day).
		First(&view).Error
	if err != nil {
		return nil, fmt.Errorf("load concurrent view: %w", err)
	}
	return s.bottleByID(ctx, view.BottleID)
}
