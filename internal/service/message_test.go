package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"birthday-home/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemover records removal calls and optionally fails them.
type fakeRemover struct {
	removed []string
	err     error
}

func (f *fakeRemover) Remove(ref string) error {
	f.removed = append(f.removed, ref)
	return f.err
}

func TestPostEmptySubmissionIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db, &fakeRemover{}, fixedClock(t, "2026-03-01 10:00:00"))

	m, err := svc.Post(context.Background(), "030605", "", "")
	require.NoError(t, err)
	assert.Nil(t, m)

	var count int64
	require.NoError(t, db.Model(&model.Message{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPostAttachmentOnlyIsEnough(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db, &fakeRemover{}, fixedClock(t, "2026-03-01 10:00:00"))

	m, err := svc.Post(context.Background(), "030605", "", "abc123.png")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.True(t, m.Active)
	assert.Equal(t, "abc123.png", m.FilePath)
}

func TestListActiveJoinsNamesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	mustCreateUser(t, db, "030605", "user")
	mustCreateUser(t, db, "ry5678", "ry")
	clk := fixedClock(t, "2026-03-01 10:00:00")
	svc := NewMessageService(db, &fakeRemover{}, clk)
	ctx := context.Background()

	_, err := svc.Post(ctx, "ry5678", "earlier", "")
	require.NoError(t, err)
	clk.T = clk.T.Add(time.Hour)
	_, err = svc.Post(ctx, "030605", "hello", "")
	require.NoError(t, err)

	rows, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "hello", rows[0].Text)
	assert.Equal(t, "user", rows[0].DisplayName)
	assert.Equal(t, "earlier", rows[1].Text)
	assert.Equal(t, "ry", rows[1].DisplayName)
}

func TestListActiveHidesSoftDeleted(t *testing.T) {
	db := newTestDB(t)
	mustCreateUser(t, db, "030605", "user")
	svc := NewMessageService(db, &fakeRemover{}, fixedClock(t, "2026-03-01 10:00:00"))
	ctx := context.Background()

	m, err := svc.Post(ctx, "030605", "to be hidden", "")
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(ctx, "030605", m.ID))

	rows, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// the row itself survives for audit
	var kept model.Message
	require.NoError(t, db.Where("id = ?", m.ID).First(&kept).Error)
	assert.False(t, kept.Active)
}

func TestSoftDeleteForeignMessageIsSilentNoOp(t *testing.T) {
	db := newTestDB(t)
	mustCreateUser(t, db, "030605", "user")
	svc := NewMessageService(db, &fakeRemover{}, fixedClock(t, "2026-03-01 10:00:00"))
	ctx := context.Background()

	m, err := svc.Post(ctx, "030605", "mine", "")
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(ctx, "ry5678", m.ID))
	require.NoError(t, svc.SoftDelete(ctx, "030605", "no-such-id"))

	var kept model.Message
	require.NoError(t, db.Where("id = ?", m.ID).First(&kept).Error)
	assert.True(t, kept.Active)
}

func TestSoftDeleteRemovesAttachmentBestEffort(t *testing.T) {
	db := newTestDB(t)
	remover := &fakeRemover{}
	svc := NewMessageService(db, remover, fixedClock(t, "2026-03-01 10:00:00"))
	ctx := context.Background()

	m, err := svc.Post(ctx, "030605", "with file", "deadbeef.jpg")
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(ctx, "030605", m.ID))
	assert.Equal(t, []string{"deadbeef.jpg"}, remover.removed)
}

func TestSoftDeleteSurvivesFileRemovalFailure(t *testing.T) {
	db := newTestDB(t)
	remover := &fakeRemover{err: errors.New("disk gone")}
	svc := NewMessageService(db, remover, fixedClock(t, "2026-03-01 10:00:00"))
	ctx := context.Background()

	m, err := svc.Post(ctx, "030605", "with file", "deadbeef.jpg")
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(ctx, "030605", m.ID))

	var kept model.Message
	require.NoError(t, db.Where("id = ?", m.ID).First(&kept).Error)
	assert.False(t, kept.Active)
}

func TestCountByAuthorIncludesInactive(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db, &fakeRemover{}, fixedClock(t, "2026-03-01 10:00:00"))
	ctx := context.Background()

	m, err := svc.Post(ctx, "030605", "one", "")
	require.NoError(t, err)
	_, err = svc.Post(ctx, "030605", "two", "")
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(ctx, "030605", m.ID))

	n, err := svc.CountByAuthor(ctx, "030605")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
