package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
)

// userStore reads per-user data the mobile app keeps under users/{uid}.
type userStore struct {
	Users *firestore.CollectionRef
}

func NewUserStore(client *firestore.Client) *userStore {
	return &userStore{Users: client.Collection("users")}
}

// FCMTokens returns the distinct device tokens registered under
// users/{uid}/fcm_tokens. A user with no devices yields an empty slice.
func (us *userStore) FCMTokens(ctx context.Context, uid string) ([]string, error) {
	iter := us.Users.Doc(uid).Collection("fcm_tokens").Documents(ctx)
	defer iter.Stop()

	seen := make(map[string]bool)
	tokens := []string{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list fcm tokens", err)
		}

		var t models.FCMToken
		if err := doc.DataTo(&t); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse fcm token", err)
		}
		if t.Token == "" || seen[t.Token] {
			continue
		}
		seen[t.Token] = true
		tokens = append(tokens, t.Token)
	}
	return tokens, nil
}
