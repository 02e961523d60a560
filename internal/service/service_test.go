package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"birthday-home/internal/clock"
	"birthday-home/internal/config"
	"birthday-home/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database with the same gorm
// settings the server uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Message{}, &model.Activity{},
		&model.Bottle{}, &model.BottleView{}, &model.ScheduledMessage{},
		&model.Visit{}, &model.Chronicle{},
	))
	return db
}

func fixedClock(t *testing.T, s string) *clock.Fixed {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", s)
	require.NoError(t, err)
	return &clock.Fixed{T: ts}
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AllowedBirthdays: []string{"030605", "ry5678"},
		DisplayNames:     map[string]string{"ry5678": "ry"},
	}
}

func mustCreateUser(t *testing.T, db *gorm.DB, birthday, name string) {
	t.Helper()
	require.NoError(t, db.Create(&model.User{Birthday: birthday, DisplayName: name}).Error)
}
