package service

import (
	"context"
	"errors"
	"fmt"

	"birthday-home/internal/config"
	"birthday-home/internal/model"

	"gorm.io/gorm"
)

// ErrInvalidCredential means the token is not on the allow-list. No user row
// is ever created for such a token.
var ErrInvalidCredential = errors.New("invalid credential")

// IdentityService checks birthday tokens against a fixed allow-list and lazily
// creates the user row on first sight.
type IdentityService struct {
	db          *gorm.DB
	allowed     map[string]struct{}
	names       map[string]string
	defaultName string
}

func NewIdentityService(db *gorm.DB, cfg config.AuthConfig) *IdentityService {
	allowed := make(map[string]struct{}, len(cfg.AllowedBirthdays))
	for _, b := range cfg.AllowedBirthdays {
		allowed[b] = struct{}{}
	}
	defaultName := cfg.DefaultName
	if defaultName == "" {
		defaultName = "user"
	}
	return &IdentityService{db: db, allowed: allowed, names: cfg.DisplayNames, defaultName: defaultName}
}

// Allowed reports whether token is on the allow-list without touching storage.
// The landing gate uses this.
func (s *IdentityService) Allowed(token string) bool {
	_, ok := s.allowed[token]
	return ok
}

func (s *IdentityService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if !s.Allowed(token) {
		return nil, ErrInvalidCredential
	}

	var u model.User
	err := s.db.WithContext(ctx).Where("birthday = ?", token).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load user: %w", err)
	}

	name := s.names[token]
	if name == "" {
		name = s.defaultName
	}
	u = model.User{Birthday: token, DisplayName: name}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}
