package service

import (
	"context"
	"errors"
	"fmt"

	"birthday-home/internal/clock"
	"birthday-home/internal/logger"
	"birthday-home/internal/model"

	"gorm.io/gorm"
)

// FileRemover is the slice of the file store message deletion needs.
type FileRemover interface {
	Remove(ref string) error
}

// MessageService is the shared board: append, list with author names, and
// author-only soft delete.
type MessageService struct {
	db    *gorm.DB
	files FileRemover
	clock clock.Clock
}

func NewMessageService(db *gorm.DB, files FileRemover, clk clock.Clock) *MessageService {
	return &MessageService{db: db, files: files, clock: clk}
}

// Post persists a new active message. A submission with neither text nor
// attachment is silently ignored and returns (nil, nil), matching the board's
// original behavior.
func (s *MessageService) Post(ctx context.Context, birthday, text, filePath string) (*model.Message, error) {
	if text == "" && filePath == "" {
		return nil, nil
	}
	m := model.Message{
		ID:       model.NewID(),
		Time:     s.clock.Now(),
		Birthday: birthday,
		Text:     text,
		FilePath: filePath,
		Active:   true,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return &m, nil
}

// ListActive returns active messages newest-first, each joined with the
// author's display name.
func (s *MessageService) ListActive(ctx context.Context) ([]model.MessageView, error) {
	var rows []model.MessageView
	err := s.db.WithContext(ctx).
		Table("messages").
		Select("messages.id, messages.time, messages.text, messages.file_path, messages.birthday, users.display_name").
		Joins("JOIN users ON users.birthday = messages.birthday").
		Where("messages.active = ?", true).
		Order("messages.time DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return rows, nil
}

// SoftDelete marks a message inactive if and only if it belongs to the caller.
// A missing or foreign id is a silent no-op. The row stays for audit; only the
// attachment file is removed, best-effort.
func (s *MessageService) SoftDelete(ctx context.Context, birthday, id string) error {
	var m model.Message
	err := s.db.WithContext(ctx).
		Where("id = ? AND birthday = ?", id, birthday).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load message: %w", err)
	}

	err = s.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ? AND birthday = ?", id, birthday).
		Update("active", false).Error
	if err != nil {
		return fmt.Errorf("deactivate message: %w", err)
	}

	if m.FilePath != "" {
		// file cleanup must not block the soft delete
		if err := s.files.Remove(m.FilePath); err != nil {
			logger.Warn("attachment cleanup failed", "message_id", id, "err", err)
		}
	}
	return nil
}

func (s *MessageService) CountByAuthor(ctx context.Context, birthday string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("birthday = ?", birthday).
		Count(&n).Error
	return n, err
}
