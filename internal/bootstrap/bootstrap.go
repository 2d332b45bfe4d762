package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	gcs "cloud.google.com/go/storage"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"

	supabaseclient "github.com/GregMSThompson/flowadmin/internal/client/supabase"
	"github.com/GregMSThompson/flowadmin/internal/config"
	"github.com/GregMSThompson/flowadmin/internal/store"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Firebase  *auth.Client
	Messaging *messaging.Client
	Bucket    *gcs.BucketHandle // nil without STORAGEBUCKET
	Secrets   *secretmanager.Client

	Supabase *supabaseclient.Adapter // nil when Supabase is not configured
	Minter   *supabaseclient.Minter  // nil without a JWT secret
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	slog.SetDefault(bs.Log)

	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	fb, err := InitFirebase(applicationCtx, cfg.ProjectID, cfg.StorageBucket)
	if err != nil {
		return bs, err
	}
	bs.Firebase, bs.Messaging, bs.Bucket = fb.Auth, fb.Messaging, fb.Bucket

	if cfg.SupabaseEnabled() {
		if err := bs.initSupabase(applicationCtx, cfg); err != nil {
			return bs, err
		}
	}

	return bs, nil
}

func (bs *Bootstrap) initSupabase(ctx context.Context, cfg *config.Config) error {
	bs.Supabase = supabaseclient.NewAdapter(cfg.SupabaseURL, cfg.SupabaseKey, &http.Client{Timeout: 30 * time.Second})

	secret := cfg.SupabaseJWTSecret
	if secret == "" && cfg.SupabaseJWTSecretName != "" {
		var err error
		bs.Secrets, err = InitSecretManager(ctx)
		if err != nil {
			return err
		}
		secret, err = store.NewSecretStore(bs.Secrets, cfg.ProjectID).Latest(ctx, cfg.SupabaseJWTSecretName)
		if err != nil {
			return err
		}
	}
	if secret == "" {
		bs.Log.Warn("supabase jwt secret not configured, proxy disabled")
		return nil
	}
	bs.Minter = supabaseclient.NewMinter(secret, cfg.SupabaseProjectRef)
	return nil
}

func (bs *Bootstrap) Close() {
	if bs.Firestore != nil {
		bs.Firestore.Close()
	}
	if bs.Secrets != nil {
		bs.Secrets.Close()
	}
}
