package service

import (
	"context"
	"testing"
	"time"

	"birthday-home/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAppendsWithClockTime(t *testing.T) {
	db := newTestDB(t)
	clk := fixedClock(t, "2026-03-01 10:30:00")
	log := NewActivityLogger(db, clk)

	log.Record("030605", "dashboard")

	var rows []model.Activity
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "030605", rows[0].Birthday)
	assert.Equal(t, "dashboard", rows[0].Page)
	assert.True(t, rows[0].AccessTime.Equal(clk.T))
}

func TestRecordNeverPanicsOnStorageFailure(t *testing.T) {
	db := newTestDB(t)
	log := NewActivityLogger(db, fixedClock(t, "2026-03-01 10:30:00"))

	// break the table; the request path must survive anyway
	require.NoError(t, db.Migrator().DropTable(&model.Activity{}))
	assert.NotPanics(t, func() { log.Record("030605", "dashboard") })
}

func TestRecentForOrderingAndLimit(t *testing.T) {
	db := newTestDB(t)
	clk := fixedClock(t, "2026-03-01 08:00:00")
	log := NewActivityLogger(db, clk)

	pages := []string{"login_success", "dashboard", "message", "bottle", "message", "dashboard", "bottle"}
	for _, p := range pages {
		log.Record("030605", p)
		clk.T = clk.T.Add(time.Minute)
	}
	log.Record("ry5678", "dashboard")

	rows, err := log.RecentFor(context.Background(), "030605", 5)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "bottle", rows[0].Page)
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i-1].AccessTime.Before(rows[i].AccessTime))
	}
	for _, r := range rows {
		assert.Equal(t, "030605", r.Birthday)
	}
}
