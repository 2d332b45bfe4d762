package bootstrap

import (
	"context"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
)

func InitFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	return firestore.NewClient(ctx, projectID)
}

func InitSecretManager(ctx context.Context) (*secretmanager.Client, error) {
	return secretmanager.NewClient(ctx)
}
