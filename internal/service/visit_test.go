package service

import (
	"context"
	"testing"

	"birthday-home/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitRecordAndCleanupByUserAgent(t *testing.T) {
	db := newTestDB(t)
	log := NewVisitLogger(db, fixedClock(t, "2026-03-01 10:00:00"))
	ctx := context.Background()

	log.Record("1.2.3.4", "Mozilla/5.0 (iPhone)", "landing")
	log.Record("1.2.3.5", "Googlebot/2.1", "landing")
	log.Record("1.2.3.6", "Googlebot/2.1", "landing-birthday-unlocked")

	n, err := log.CleanupByUserAgent(ctx, "Googlebot")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var rows []model.Visit
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mozilla/5.0 (iPhone)", rows[0].UserAgent)
}

func TestVisitCleanupRejectsEmptyFilter(t *testing.T) {
	db := newTestDB(t)
	log := NewVisitLogger(db, fixedClock(t, "2026-03-01 10:00:00"))
	log.Record("1.2.3.4", "Mozilla", "landing")

	_, err := log.CleanupByUserAgent(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	var count int64
	require.NoError(t, db.Model(&model.Visit{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
