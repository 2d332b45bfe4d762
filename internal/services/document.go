package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

type documentStore interface {
	List(ctx context.Context, collection string, params dto.PageParams) ([]models.Document, int, error)
	ListOwned(ctx context.Context, collection, uid string, params dto.PageParams) ([]models.Document, int, error)
	Get(ctx context.Context, collection, id string) (models.Document, error)
	Create(ctx context.Context, collection, id string, doc models.Document) error
	Update(ctx context.Context, collection, id string, doc models.Document) error
	Delete(ctx context.Context, collection, id string) error
}

type collectionPolicy interface {
	AllowsCollection(name string) bool
	AllowsRecords(name string) bool
}

// recordReserved collections hold backend data and never accept user records,
// whatever the dashboard config says.
var recordReserved = map[string]bool{
	"users":                 true,
	"data_removal_requests": true,
}

type documentService struct {
	Store  documentStore
	Policy collectionPolicy
	now    func() time.Time
	newID  func() string
}

func NewDocumentService(store documentStore, policy collectionPolicy) *documentService {
	return &documentService{
		Store:  store,
		Policy: policy,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *documentService) List(ctx context.Context, collection string, params dto.PageParams) (dto.Page[models.Document], error) {
	if err := s.checkCollection(collection); err != nil {
		return dto.Page[models.Document]{}, err
	}
	docs, total, err := s.Store.List(ctx, collection, params)
	if err != nil {
		return dto.Page[models.Document]{}, err
	}
	return dto.NewPage(docs, total, params), nil
}

func (s *documentService) Get(ctx context.Context, collection, id string) (models.Document, error) {
	if err := s.checkKey(collection, id); err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, collection, id)
}

// Create stores doc under the id it carries, or a new UUID. user_id defaults
// to the caller so admin-created records still have an owner.
func (s *documentService) Create(ctx context.Context, caller *models.AuthUser, collection string, doc models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	if err := s.checkCollection(collection); err != nil {
		return nil, err
	}
	out := doc.Clone()
	if out.OwnerID() == "" && caller != nil {
		out[models.FieldUserID] = caller.UID
	}
	id, err := s.assignID(out)
	if err != nil {
		return nil, err
	}
	s.stamp(out, true)

	if err := s.Store.Create(ctx, collection, id, out); err != nil {
		log.Error("failed to create document", "collection", collection, "id", id, "error", err)
		return nil, err
	}

	log.Info("document created", "collection", collection, "id", id)
	return out, nil
}

func (s *documentService) Update(ctx context.Context, collection, id string, doc models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	if err := s.checkKey(collection, id); err != nil {
		return nil, err
	}
	changes := doc.Clone()
	delete(changes, models.FieldID)
	delete(changes, models.FieldCreatedAt)
	if len(changes) == 0 {
		return nil, errs.NewValidationError("update body is empty")
	}
	s.stamp(changes, false)

	if err := s.Store.Update(ctx, collection, id, changes); err != nil {
		return nil, err
	}

	log.Info("document updated", "collection", collection, "id", id, "fields", len(changes))
	return s.Store.Get(ctx, collection, id)
}

func (s *documentService) Delete(ctx context.Context, collection, id string) error {
	if err := s.checkKey(collection, id); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, collection, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("document deleted", "collection", collection, "id", id)
	return nil
}

// ---- Owned records ----

func (s *documentService) ListOwned(ctx context.Context, caller *models.AuthUser, collection string, params dto.PageParams) (dto.Page[models.Document], error) {
	if err := s.checkRecords(collection); err != nil {
		return dto.Page[models.Document]{}, err
	}
	docs, total, err := s.Store.ListOwned(ctx, collection, caller.UID, params)
	if err != nil {
		return dto.Page[models.Document]{}, err
	}
	return dto.NewPage(docs, total, params), nil
}

func (s *documentService) GetOwned(ctx context.Context, caller *models.AuthUser, collection, id string) (models.Document, error) {
	if err := s.checkRecords(collection); err != nil {
		return nil, err
	}
	if !validName(id) {
		return nil, errs.NewValidationError(fmt.Sprintf("invalid document key %q", id))
	}
	doc, err := s.Store.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(ctx, caller, collection, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateOwned always stamps the caller as owner, whatever the body says.
func (s *documentService) CreateOwned(ctx context.Context, caller *models.AuthUser, collection string, doc models.Document) (models.Document, error) {
	if err := s.checkRecords(collection); err != nil {
		return nil, err
	}
	out := doc.Clone()
	out[models.FieldUserID] = caller.UID
	return s.Create(ctx, caller, collection, out)
}

func (s *documentService) DeleteOwned(ctx context.Context, caller *models.AuthUser, collection, id string) error {
	if _, err := s.GetOwned(ctx, caller, collection, id); err != nil {
		return err
	}
	return s.Store.Delete(ctx, collection, id)
}

func checkOwner(ctx context.Context, caller *models.AuthUser, collection string, doc models.Document) error {
	owner := doc.OwnerID()
	if owner == "" {
		return errs.NewValidationError("document does not have a user_id field")
	}
	if owner != caller.UID && !caller.IsAdmin() {
		logger.FromContext(ctx).Warn("attempt to access a record not owned by the caller",
			"collection", collection, "id", doc.ID())
		return errs.NewForbiddenError("Attempted to access a record without privileges.")
	}
	return nil
}

// ---- Helpers ----

func (s *documentService) assignID(doc models.Document) (string, error) {
	raw, present := doc[models.FieldID]
	if !present || raw == "" {
		id := s.newID()
		doc[models.FieldID] = id
		return id, nil
	}
	id, ok := raw.(string)
	if !ok || !validName(id) {
		return "", errs.NewValidationError("id must be a non-empty string without '/'")
	}
	return id, nil
}

func (s *documentService) stamp(doc models.Document, created bool) {
	now := s.now().UTC()
	if created {
		doc[models.FieldCreatedAt] = now
	}
	doc[models.FieldUpdatedAt] = now
}

func (s *documentService) checkCollection(collection string) error {
	if !validName(collection) {
		return errs.NewValidationError(fmt.Sprintf("invalid collection name %q", collection))
	}
	if s.Policy != nil && !s.Policy.AllowsCollection(collection) {
		return errs.NewNotFoundError(fmt.Sprintf("collection %s is not managed by this dashboard", collection))
	}
	return nil
}

// checkRecords gates /records: only collections the dashboard config lists
// as Firestore collections, minus the reserved ones. No config means no
// user records at all.
func (s *documentService) checkRecords(collection string) error {
	if !validName(collection) {
		return errs.NewValidationError(fmt.Sprintf("invalid collection name %q", collection))
	}
	if recordReserved[collection] || s.Policy == nil || !s.Policy.AllowsRecords(collection) {
		return errs.NewNotFoundError(fmt.Sprintf("collection %s does not accept user records", collection))
	}
	return nil
}

func (s *documentService) checkKey(collection, id string) error {
	if err := s.checkCollection(collection); err != nil {
		return err
	}
	if !validName(id) {
		return errs.NewValidationError(fmt.Sprintf("invalid document key %q", id))
	}
	return nil
}

// validName rejects empty names, path separators and Firestore's reserved
// __name__ style identifiers.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return false
	}
	return !(strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__"))
}
