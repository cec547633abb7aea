package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salongo/internal/audit"
	"github.com/BruksfildServices01/salongo/internal/models"
	"github.com/BruksfildServices01/salongo/internal/testutil"
)

func TestDispatcherDrainsOnClose(t *testing.T) {
	db := testutil.NewDB(t)
	d := audit.NewDispatcher(audit.New(db), zerolog.Nop())

	for i := 0; i < 5; i++ {
		d.Dispatch(audit.Event{
			SalonID:  1,
			UserID:   audit.Ptr(7),
			Action:   audit.ActionBookingCreated,
			Entity:   "booking",
			EntityID: audit.Ptr(uint(i + 1)),
			Metadata: map[string]any{"n": i},
		})
	}
	d.Close()

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	db := testutil.NewDB(t)
	d := audit.NewDispatcher(audit.New(db), zerolog.Nop())
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(audit.Event{SalonID: 1, Action: audit.ActionBookingCreated, Entity: "booking"})
	})
	d.Close()

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListFiltersAndPages(t *testing.T) {
	db := testutil.NewDB(t)
	l := audit.New(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Log(1, nil, audit.ActionBookingCreated, "booking", nil, nil))
	}
	require.NoError(t, l.Log(1, nil, audit.ActionWorkerAdded, "worker", nil, nil))
	require.NoError(t, l.Log(2, nil, audit.ActionBookingCreated, "booking", nil, nil))

	page, err := l.List(ctx, 1, audit.Filter{Action: audit.ActionBookingCreated, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Logs, 2)
	assert.Equal(t, 1, page.Page)

	page, err = l.List(ctx, 1, audit.Filter{Action: audit.ActionBookingCreated, Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Len(t, page.Logs, 1)

	page, err = l.List(ctx, 1, audit.Filter{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 50, page.Limit)
	assert.Equal(t, int64(4), page.Total)
}

func TestCleanupJobPurgesOldEntries(t *testing.T) {
	db := testutil.NewDB(t)
	l := audit.New(db)

	old := models.AuditLog{SalonID: 1, Action: "old", CreatedAt: time.Now().AddDate(0, 0, -120)}
	fresh := models.AuditLog{SalonID: 1, Action: "fresh", CreatedAt: time.Now()}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&fresh).Error)

	job := audit.NewCleanupJob(l, 90, zerolog.Nop())
	rows, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	var left []models.AuditLog
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "fresh", left[0].Action)
}

func TestScheduleRejectsBadSpec(t *testing.T) {
	job := audit.NewCleanupJob(audit.New(testutil.NewDB(t)), 90, zerolog.Nop())

	_, err := job.Schedule("not a cron line")
	assert.Error(t, err)

	c, err := job.Schedule("0 3 * * *")
	require.NoError(t, err)
	c.Stop()
}
