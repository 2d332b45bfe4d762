package bootstrap

import (
	"context"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
)

type FirebaseClients struct {
	Auth      *auth.Client
	Messaging *messaging.Client
	Bucket    *gcs.BucketHandle
}

func InitFirebase(ctx context.Context, projectID, storageBucket string) (*FirebaseClients, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     projectID,
		StorageBucket: storageBucket,
	})
	if err != nil {
		return nil, err
	}

	var clients FirebaseClients
	if clients.Auth, err = app.Auth(ctx); err != nil {
		return nil, err
	}
	if clients.Messaging, err = app.Messaging(ctx); err != nil {
		return nil, err
	}
	if storageBucket != "" {
		sc, err := app.Storage(ctx)
		if err != nil {
			return nil, err
		}
		if clients.Bucket, err = sc.DefaultBucket(); err != nil {
			return nil, err
		}
	}
	return &clients, nil
}
