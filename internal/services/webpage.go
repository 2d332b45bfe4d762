package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

type rowSource interface {
	Select(ctx context.Context, q dto.SelectQuery) (dto.SelectResult, error)
}

type removalRequestStore interface {
	Create(ctx context.Context, req *models.DataRemovalRequest) error
}

type webpageService struct {
	Rows         rowSource // nil when Supabase is not configured
	Removals     removalRequestStore
	Table        string
	TermsRowID   string
	PrivacyRowID string
}

func NewWebpageService(rows rowSource, removals removalRequestStore, table, termsRowID, privacyRowID string) *webpageService {
	return &webpageService{
		Rows:         rows,
		Removals:     removals,
		Table:        table,
		TermsRowID:   termsRowID,
		PrivacyRowID: privacyRowID,
	}
}

func (s *webpageService) TermsAndConditions(ctx context.Context) (string, error) {
	return s.complianceHTML(ctx, s.TermsRowID, "Terms and conditions")
}

func (s *webpageService) PrivacyPolicy(ctx context.Context) (string, error) {
	return s.complianceHTML(ctx, s.PrivacyRowID, "Privacy policy")
}

func (s *webpageService) complianceHTML(ctx context.Context, rowID, title string) (string, error) {
	if s.Rows == nil {
		return "", errs.NewNotFoundError(fmt.Sprintf("%s not configured", title))
	}
	res, err := s.Rows.Select(ctx, dto.SelectQuery{
		Table:   s.Table,
		Columns: "html",
		Eq:      map[string]string{"id": rowID},
	})
	if err != nil {
		return "", err
	}
	if len(res.Rows) != 1 {
		logger.FromContext(ctx).Warn("unexpected compliance rows", "row_id", rowID, "rows", len(res.Rows))
		return "", errs.NewNotFoundError(fmt.Sprintf("%s not found or wrong number of rows returned", title))
	}
	html, _ := res.Rows[0]["html"].(string)
	return html, nil
}

// SubmitRemovalRequest records the request for admins to action.
func (s *webpageService) SubmitRemovalRequest(ctx context.Context, form dto.DataRemovalForm) (*models.DataRemovalRequest, error) {
	req := &models.DataRemovalRequest{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Message: strings.TrimSpace(form.Message),
		Status:  "pending",
	}
	if err := s.Removals.Create(ctx, req); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Warn("data removal request submitted", "request_id", req.ID, "email", req.Email)
	return req, nil
}
