package service

import (
	"context"
	"fmt"

	"birthday-home/internal/clock"
	"birthday-home/internal/config"
	"birthday-home/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminService backs the moderation console: secret-key login, per-table
// browsing, and chronicle publishing.
type AdminService struct {
	db         *gorm.DB
	clock      clock.Clock
	secretHash []byte
	jwtSecret  []byte
}

func NewAdminService(db *gorm.DB, clk clock.Clock, cfg config.AdminConfig) (*AdminService, error) {
	hash := []byte(cfg.SecretHash)
	if len(hash) == 0 {
		if cfg.Secret == "" {
			return nil, fmt.Errorf("admin secret not configured")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(cfg.Secret), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin secret: %w", err)
		}
		hash = h
	}
	return &AdminService{db: db, clock: clk, secretHash: hash, jwtSecret: []byte(cfg.JWTSecret)}, nil
}

func (s *AdminService) VerifyKey(key string) bool {
	return bcrypt.CompareHashAndPassword(s.secretHash, []byte(key)) == nil
}

func (s *AdminService) JWTSecret() []byte { return s.jwtSecret }

func (s *AdminService) Summary(ctx context.Context) (model.AdminSummary, error) {
	var sum model.AdminSummary
	counts := []struct {
		dst   *int64
		table interface{}
	}{
		{&sum.Users, &model.User{}},
		{&sum.Messages, &model.Message{}},
		{&sum.Bottles, &model.Bottle{}},
		{&sum.BottleViews, &model.BottleView{}},
		{&sum.Activity, &model.Activity{}},
		{&sum.Visits, &model.Visit{}},
		{&sum.ScheduledMessages, &model.ScheduledMessage{}},
		{&sum.Chronicles, &model.Chronicle{}},
	}
	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(c.table).Count(c.dst).Error; err != nil {
			return sum, fmt.Errorf("count: %w", err)
		}
	}
	return sum, nil
}

// Table lists one table newest-first. Each table knows its own time column,
// like the original console's per-table ordering.
func (s *AdminService) Table(ctx context.Context, name string) (interface{}, error) {
	q := s.db.WithContext(ctx)
	switch name {
	case "users":
		var rows []model.User
		return rows, q.Order("birthday").Find(&rows).Error
	case "messages":
		var rows []model.Message
		return rows, q.Order("time DESC").Find(&rows).Error
	case "user_activity":
		var rows []model.Activity
		return rows, q.Order("access_time DESC").Find(&rows).Error
	case "bottles":
		var rows []model.Bottle
		return rows, q.Order("created_at DESC").Find(&rows).Error
	case "bottle_views":
		var rows []model.BottleView
		return rows, q.Order("view_date DESC").Find(&rows).Error
	case "scheduled_messages":
		var rows []model.ScheduledMessage
		return rows, q.Order("created_at DESC").Find(&rows).Error
	case "visits":
		var rows []model.Visit
		return rows, q.Order("visit_time DESC").Find(&rows).Error
	case "chronicles":
		var rows []model.Chronicle
		return rows, q.Order("created_at DESC").Find(&rows).Error
	default:
		return nil, ErrInvalidInput
	}
}

func (s *AdminService) PublishChronicle(ctx context.Context, title, body string) (*model.Chronicle, error) {
	if title == "" || body == "" {
		return nil, ErrInvalidInput
	}
	c := model.Chronicle{Title: title, Body: body, CreatedAt: s.clock.Now()}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("insert chronicle: %w", err)
	}
	return &c, nil
}

func (s *AdminService) ListChronicles(ctx context.Context) ([]model.Chronicle, error) {
	var rows []model.Chronicle
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}
