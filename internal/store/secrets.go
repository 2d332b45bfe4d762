package store

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/flowadmin/internal/errs"
)

// Secrets path
// projects/{project}/secrets/{secretID}/versions/latest

type secretStore struct {
	client    *secretmanager.Client
	projectID string
}

func NewSecretStore(client *secretmanager.Client, projectID string) *secretStore {
	return &secretStore{client: client, projectID: projectID}
}

func (s *secretStore) Latest(ctx context.Context, secretID string) (string, error) {
	res, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, secretID),
	})
	if status.Code(err) == codes.NotFound {
		return "", errs.NewNotFoundError(fmt.Sprintf("secret %s not found", secretID))
	}
	if err != nil {
		return "", errs.NewExternalServiceError("secretmanager", "failed to access secret", false, err)
	}
	return string(res.Payload.Data), nil
}
