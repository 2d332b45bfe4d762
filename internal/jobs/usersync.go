package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

const runTimeout = 5 * time.Minute

type userSyncer interface {
	SyncSupabaseUsers(ctx context.Context) (dto.UserSyncResult, error)
}

// UserSyncJob copies Firebase users missing from Supabase, once or on a
// cron schedule.
type UserSyncJob struct {
	Syncer    userSyncer
	Log       *slog.Logger
	scheduler *cron.Cron
}

func NewUserSyncJob(syncer userSyncer, log *slog.Logger) *UserSyncJob {
	return &UserSyncJob{
		Syncer: syncer,
		Log:    log.With("job", "user_sync"),
		scheduler: cron.New(
			cron.WithLogger(NewCronLogger(log)),
			cron.WithChain(cron.SkipIfStillRunning(NewCronLogger(log))),
		),
	}
}

// RunOnce performs a single sync.
func (j *UserSyncJob) RunOnce(ctx context.Context) (dto.UserSyncResult, error) {
	ctx, cancel := context.WithTimeout(logger.ToContext(ctx, j.Log), runTimeout)
	defer cancel()

	res, err := j.Syncer.SyncSupabaseUsers(ctx)
	if err != nil {
		j.Log.Error("user sync run failed", "error", err)
		return res, err
	}
	return res, nil
}

// Start schedules the job on spec and starts the scheduler in the background.
func (j *UserSyncJob) Start(spec string) error {
	id, err := j.scheduler.AddFunc(spec, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		j.Log.Error("failed to schedule user sync", "spec", spec, "error", err)
		return err
	}
	j.Log.Info("user sync scheduled", "spec", spec, "entry_id", int(id))
	j.scheduler.Start()
	return nil
}

// Stop waits up to 10s for a running sync to finish.
func (j *UserSyncJob) Stop() {
	select {
	case <-j.scheduler.Stop().Done():
		j.Log.Info("user sync scheduler stopped")
	case <-time.After(10 * time.Second):
		j.Log.Warn("user sync scheduler stop timed out")
	}
}

// cronLogger routes cron's own log lines onto slog.
type cronLogger struct {
	log *slog.Logger
}

func NewCronLogger(log *slog.Logger) cron.Logger {
	return &cronLogger{log: log.With("component", "cron")}
}

func (c *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debug(msg, keysAndValues...)
}

func (c *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Error(msg, append(keysAndValues, "error", err)...)
}
