package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
)

type documentStore struct {
	client *firestore.Client
}

func NewDocumentStore(client *firestore.Client) *documentStore {
	return &documentStore{client: client}
}

func (s *documentStore) List(ctx context.Context, collection string, params dto.PageParams) ([]models.Document, int, error) {
	return s.page(ctx, s.client.Collection(collection).Query, params)
}

// ListOwned pages through documents whose user_id equals uid.
func (s *documentStore) ListOwned(ctx context.Context, collection, uid string, params dto.PageParams) ([]models.Document, int, error) {
	q := s.client.Collection(collection).Where(models.FieldUserID, "==", uid)
	return s.page(ctx, q, params)
}

func (s *documentStore) page(ctx context.Context, q firestore.Query, params dto.PageParams) ([]models.Document, int, error) {
	total, err := count(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	iter := q.OrderBy(firestore.DocumentID, firestore.Asc).
		Offset(params.Offset()).
		Limit(params.Size).
		Documents(ctx)
	defer iter.Stop()

	docs := make([]models.Document, 0, params.Size)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errs.NewDatabaseError("read", "failed to list documents", err)
		}
		docs = append(docs, toDocument(snap))
	}
	return docs, total, nil
}

func count(ctx context.Context, q firestore.Query) (int, error) {
	res, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, errs.NewDatabaseError("read", "failed to count documents", err)
	}
	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, errs.NewDatabaseError("read", "unexpected count result", fmt.Errorf("got %T", res["all"]))
	}
	return int(v.GetIntegerValue()), nil
}

func (s *documentStore) Get(ctx context.Context, collection, id string) (models.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr(err, "read", fmt.Sprintf("document %s/%s not found", collection, id))
	}
	return toDocument(snap), nil
}

func (s *documentStore) Create(ctx context.Context, collection, id string, doc models.Document) error {
	_, err := s.client.Collection(collection).Doc(id).Create(ctx, map[string]any(doc))
	return mapErr(err, "create", "")
}

// Update merges top-level fields into an existing document.
func (s *documentStore) Update(ctx context.Context, collection, id string, doc models.Document) error {
	updates := make([]firestore.Update, 0, len(doc))
	for k, v := range doc {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	return mapErr(err, "update", fmt.Sprintf("document %s/%s not found", collection, id))
}

func (s *documentStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists)
	return mapErr(err, "delete", fmt.Sprintf("document %s/%s not found", collection, id))
}

func toDocument(snap *firestore.DocumentSnapshot) models.Document {
	doc := models.Document(snap.Data())
	if doc == nil {
		doc = models.Document{}
	}
	doc[models.FieldID] = snap.Ref.ID
	return doc
}
