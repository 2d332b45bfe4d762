package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

type countingSyncer struct {
	runs atomic.Int32
	err  error
}

func (s *countingSyncer) SyncSupabaseUsers(ctx context.Context) (dto.UserSyncResult, error) {
	s.runs.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return dto.UserSyncResult{}, errors.New("expected a deadline")
	}
	return dto.UserSyncResult{FirebaseUsers: 3, Inserted: 1, Existing: 2}, s.err
}

func testLogger() *slog.Logger {
	return slog.New(logger.NewTestHandler(slog.LevelDebug))
}

func TestRunOnce(t *testing.T) {
	syncer := &countingSyncer{}
	job := NewUserSyncJob(syncer, testLogger())

	res, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.UserSyncResult{FirebaseUsers: 3, Inserted: 1, Existing: 2}, res)
	assert.EqualValues(t, 1, syncer.runs.Load())
}

func TestRunOnceError(t *testing.T) {
	job := NewUserSyncJob(&countingSyncer{err: errors.New("supabase down")}, testLogger())

	_, err := job.RunOnce(context.Background())
	assert.EqualError(t, err, "supabase down")
}

func TestStartRejectsBadSpec(t *testing.T) {
	job := NewUserSyncJob(&countingSyncer{}, testLogger())
	assert.Error(t, job.Start("not a cron spec"))
}

func TestStartRunsOnSchedule(t *testing.T) {
	syncer := &countingSyncer{}
	job := NewUserSyncJob(syncer, testLogger())

	require.NoError(t, job.Start("@every 1s"))
	defer job.Stop()

	assert.Eventually(t, func() bool { return syncer.runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestCronLoggerError(t *testing.T) {
	l := NewCronLogger(testLogger())
	// must not panic on odd key/value lists
	l.Error(errors.New("boom"), "job failed", "entry")
	l.Info("tick", "now", time.Now())
}
