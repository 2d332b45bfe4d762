package services

import (
	"context"
	"errors"
	"testing"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/pkg/helpers"
)

type stubRows struct {
	rows  []map[string]any
	query dto.SelectQuery
}

func (s *stubRows) Select(_ context.Context, q dto.SelectQuery) (dto.SelectResult, error) {
	s.query = q
	return dto.SelectResult{Rows: s.rows}, nil
}

type stubRemovals struct {
	saved *models.DataRemovalRequest
	err   error
}

func (s *stubRemovals) Create(_ context.Context, req *models.DataRemovalRequest) error {
	s.saved = req
	return s.err
}

func TestWebpageServiceTerms(t *testing.T) {
	rows := &stubRows{rows: []map[string]any{{"html": "<p>terms</p>"}}}
	svc := NewWebpageService(rows, &stubRemovals{}, "compliance", "1", "2")

	html, err := svc.TermsAndConditions(helpers.TestCtx())
	if err != nil {
		t.Fatalf("TermsAndConditions returned error: %v", err)
	}
	if html != "<p>terms</p>" {
		t.Fatalf("unexpected html: %q", html)
	}
	if rows.query.Table != "compliance" || rows.query.Eq["id"] != "1" {
		t.Fatalf("unexpected query: %+v", rows.query)
	}

	if _, err := svc.PrivacyPolicy(helpers.TestCtx()); err != nil {
		t.Fatalf("PrivacyPolicy returned error: %v", err)
	}
	if rows.query.Eq["id"] != "2" {
		t.Fatalf("privacy policy queried row %q", rows.query.Eq["id"])
	}
}

func TestWebpageServiceRequiresExactlyOneRow(t *testing.T) {
	cases := map[string][]map[string]any{
		"none": nil,
		"many": {{"html": "a"}, {"html": "b"}},
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			svc := NewWebpageService(&stubRows{rows: data}, &stubRemovals{}, "compliance", "1", "2")
			_, err := svc.TermsAndConditions(helpers.TestCtx())
			var nf *errs.NotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("expected NotFoundError, got %v", err)
			}
		})
	}
}

func TestWebpageServiceWithoutSupabase(t *testing.T) {
	svc := NewWebpageService(nil, &stubRemovals{}, "compliance", "1", "2")
	_, err := svc.PrivacyPolicy(helpers.TestCtx())
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestWebpageServiceSubmitRemovalRequest(t *testing.T) {
	removals := &stubRemovals{}
	svc := NewWebpageService(nil, removals, "compliance", "1", "2")

	req, err := svc.SubmitRemovalRequest(helpers.TestCtx(), dto.DataRemovalForm{
		Name:    "  Jane Doe ",
		Email:   "jane@example.com",
		Message: "please delete my account",
	})
	if err != nil {
		t.Fatalf("SubmitRemovalRequest returned error: %v", err)
	}
	if removals.saved != req {
		t.Fatalf("request not stored")
	}
	if req.ID == "" || req.Status != "pending" || req.Name != "Jane Doe" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestWebpageServiceSubmitRemovalRequestStoreError(t *testing.T) {
	svc := NewWebpageService(nil, &stubRemovals{err: errors.New("boom")}, "compliance", "1", "2")
	if _, err := svc.SubmitRemovalRequest(helpers.TestCtx(), dto.DataRemovalForm{Name: "a", Email: "a@b.co"}); err == nil {
		t.Fatalf("expected error")
	}
}
