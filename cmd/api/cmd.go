package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/flowadmin/internal/bootstrap"
	firebaseclient "github.com/GregMSThompson/flowadmin/internal/client/firebase"
	"github.com/GregMSThompson/flowadmin/internal/config"
	"github.com/GregMSThompson/flowadmin/internal/handlers"
	"github.com/GregMSThompson/flowadmin/internal/middleware"
	"github.com/GregMSThompson/flowadmin/internal/response"
	"github.com/GregMSThompson/flowadmin/internal/router"
	"github.com/GregMSThompson/flowadmin/internal/services"
	"github.com/GregMSThompson/flowadmin/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	dashboard, err := services.LoadDashboardConfig(cfg.AdminConfigPath)
	exitOnError("dashboard config invalid", err, bs.Log)

	// adapters
	identity := firebaseclient.NewAuthAdapter(bs.Firebase)
	messenger := firebaseclient.NewMessagingAdapter(bs.Messaging)

	// stores
	dstore := store.NewDocumentStore(bs.Firestore)
	ustore := store.NewUserStore(bs.Firestore)
	rstore := store.NewRemovalStore(bs.Firestore)

	// services
	dserv := services.NewDocumentService(dstore, dashboard)
	userv := services.NewUserService(identity, nil, cfg.UsersTable)
	nserv := services.NewNotificationService(ustore, messenger, cfg.DeepLinkURI)
	wserv := services.NewWebpageService(nil, rstore, cfg.ComplianceTable, cfg.TermsRowID, cfg.PrivacyRowID)
	if bs.Supabase != nil {
		userv.Supabase = bs.Supabase
		wserv.Rows = bs.Supabase
	}

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.DashboardConfig = dashboard
	deps.DocumentSvc = dserv
	deps.UserSvc = userv
	deps.NotificationSvc = nserv
	deps.WebpageSvc = wserv
	deps.MaxUploadBytes = services.DefaultMaxUploadBytes
	if bs.Bucket != nil {
		uploader := firebaseclient.NewStorageAdapter(bs.Bucket, cfg.StorageBucket)
		deps.UploadSvc = services.NewUploadService(uploader, services.DefaultMaxUploadBytes)
	}
	if bs.Supabase != nil {
		deps.TableSvc = services.NewTableService(bs.Supabase, dashboard)
	}
	if bs.Supabase != nil && bs.Minter != nil {
		proxy, err := handlers.NewSupabaseProxy(rh, bs.Supabase.BaseURL(), bs.Supabase.APIKey(), bs.Minter)
		exitOnError("supabase proxy setup failed", err, bs.Log)
		deps.SupabaseProxy = proxy.ProxyRoutes()
	}

	auth := middleware.NewMiddleware(bs.Firebase, rh, cfg.RequireVerifiedEmail, cfg.AvatarPlaceholderURL)

	// router
	r := router.NewRouter(deps, auth, router.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("server shutdown failed", "error", err)
		}
	}()

	bs.Log.Info("server listening", "port", cfg.Port, "supabase", bs.Supabase != nil)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	exitOnError("server start failed", err, bs.Log)
}
