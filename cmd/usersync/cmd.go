package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GregMSThompson/flowadmin/internal/bootstrap"
	firebaseclient "github.com/GregMSThompson/flowadmin/internal/client/firebase"
	"github.com/GregMSThompson/flowadmin/internal/config"
	"github.com/GregMSThompson/flowadmin/internal/jobs"
	"github.com/GregMSThompson/flowadmin/internal/services"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	once := flag.Bool("once", false, "run a single sync and exit, ignoring USERSYNCSCHEDULE")
	flag.Parse()

	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	if bs.Supabase == nil {
		exitOnError("user sync unavailable", errors.New("SUPABASEURL and SUPABASEKEY are required"), bs.Log)
	}

	userv := services.NewUserService(firebaseclient.NewAuthAdapter(bs.Firebase), bs.Supabase, cfg.UsersTable)
	job := jobs.NewUserSyncJob(userv, bs.Log)

	if *once || cfg.UserSyncSchedule == "" {
		res, err := job.RunOnce(context.Background())
		exitOnError("user sync failed", err, bs.Log)
		bs.Log.Info("user sync finished", "firebase_users", res.FirebaseUsers, "inserted", res.Inserted, "existing", res.Existing)
		return
	}

	exitOnError("user sync schedule invalid", job.Start(cfg.UserSyncSchedule), bs.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	job.Stop()
}
