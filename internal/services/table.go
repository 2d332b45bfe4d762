package services

import (
	"context"
	"fmt"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

type tableRows interface {
	Select(ctx context.Context, q dto.SelectQuery) (dto.SelectResult, error)
	Delete(ctx context.Context, table string, eq map[string]string) error
}

type tablePolicy interface {
	SupabaseTable(name string) (models.CollectionConfig, bool)
}

// tableService pages and deletes rows of the Supabase tables listed in the
// dashboard config, with the service key.
type tableService struct {
	Rows   tableRows
	Policy tablePolicy
}

func NewTableService(rows tableRows, policy tablePolicy) *tableService {
	return &tableService{Rows: rows, Policy: policy}
}

// List returns one page of every row, ordered by the collection's sort_by.
func (s *tableService) List(ctx context.Context, table string, params dto.PageParams) (dto.Page[models.Document], error) {
	cfg, err := s.table(table)
	if err != nil {
		return dto.Page[models.Document]{}, err
	}
	return s.page(ctx, dto.SelectQuery{Table: table, Order: cfg.SortBy}, params)
}

// ListOwned returns one page of the caller's rows (user_id = caller).
func (s *tableService) ListOwned(ctx context.Context, caller *models.AuthUser, table string, params dto.PageParams) (dto.Page[models.Document], error) {
	cfg, err := s.table(table)
	if err != nil {
		return dto.Page[models.Document]{}, err
	}
	q := dto.SelectQuery{
		Table: table,
		Eq:    map[string]string{models.FieldUserID: caller.UID},
		Order: cfg.SortBy,
	}
	return s.page(ctx, q, params)
}

// Delete removes a row without an ownership check. Read-only tables refuse.
func (s *tableService) Delete(ctx context.Context, table, id string) error {
	cfg, err := s.table(table)
	if err != nil {
		return err
	}
	if cfg.ReadOnly {
		return errs.NewForbiddenError(fmt.Sprintf("table %s is read-only", table))
	}
	if _, err := s.row(ctx, table, id); err != nil {
		return err
	}
	if err := s.Rows.Delete(ctx, table, map[string]string{models.FieldID: id}); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("supabase row deleted", "table", table, "id", id)
	return nil
}

// DeleteOwned removes one of the caller's rows; admins may remove any row.
func (s *tableService) DeleteOwned(ctx context.Context, caller *models.AuthUser, table, id string) error {
	if _, err := s.table(table); err != nil {
		return err
	}
	row, err := s.row(ctx, table, id)
	if err != nil {
		return err
	}
	if err := checkOwner(ctx, caller, table, row); err != nil {
		return err
	}

	eq := map[string]string{models.FieldID: id}
	if !caller.IsAdmin() {
		eq[models.FieldUserID] = caller.UID
	}
	if err := s.Rows.Delete(ctx, table, eq); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("supabase row deleted", "table", table, "id", id)
	return nil
}

// ---- Helpers ----

func (s *tableService) table(name string) (models.CollectionConfig, error) {
	if !validName(name) {
		return models.CollectionConfig{}, errs.NewValidationError(fmt.Sprintf("invalid table name %q", name))
	}
	if s.Policy == nil {
		return models.CollectionConfig{}, errs.NewNotFoundError(fmt.Sprintf("table %s is not managed by this dashboard", name))
	}
	cfg, ok := s.Policy.SupabaseTable(name)
	if !ok {
		return models.CollectionConfig{}, errs.NewNotFoundError(fmt.Sprintf("table %s is not managed by this dashboard", name))
	}
	return cfg, nil
}

func (s *tableService) page(ctx context.Context, q dto.SelectQuery, params dto.PageParams) (dto.Page[models.Document], error) {
	from, to := params.Range()
	q.From, q.To, q.Count = &from, &to, true

	res, err := s.Rows.Select(ctx, q)
	if err != nil {
		return dto.Page[models.Document]{}, err
	}
	docs := make([]models.Document, 0, len(res.Rows))
	for _, r := range res.Rows {
		docs = append(docs, models.Document(r))
	}
	return dto.NewPage(docs, res.Count, params), nil
}

func (s *tableService) row(ctx context.Context, table, id string) (models.Document, error) {
	if !validName(id) {
		return nil, errs.NewValidationError(fmt.Sprintf("invalid row id %q", id))
	}
	res, err := s.Rows.Select(ctx, dto.SelectQuery{Table: table, Eq: map[string]string{models.FieldID: id}})
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, errs.NewNotFoundError(fmt.Sprintf("row %s not found in %s", id, table))
	}
	return models.Document(res.Rows[0]), nil
}
