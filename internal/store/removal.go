package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
)

type removalStore struct {
	client *firestore.Client
}

func NewRemovalStore(client *firestore.Client) *removalStore {
	return &removalStore{client: client}
}

func (s *removalStore) Create(ctx context.Context, req *models.DataRemovalRequest) error {
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	_, err := s.client.Collection("data_removal_requests").Doc(req.ID).Create(ctx, req)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to save data removal request", err)
	}
	return nil
}
