package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
)

type stubTableService struct {
	lastTable  string
	lastID     string
	lastParams dto.PageParams
	lastCaller *models.AuthUser
	err        error
}

func (s *stubTableService) List(_ context.Context, table string, params dto.PageParams) (dto.Page[models.Document], error) {
	s.lastTable, s.lastParams = table, params
	return dto.NewPage[models.Document](nil, 0, params), s.err
}

func (s *stubTableService) ListOwned(_ context.Context, caller *models.AuthUser, table string, params dto.PageParams) (dto.Page[models.Document], error) {
	s.lastCaller, s.lastTable, s.lastParams = caller, table, params
	return dto.NewPage[models.Document](nil, 0, params), s.err
}

func (s *stubTableService) Delete(_ context.Context, table, id string) error {
	s.lastTable, s.lastID = table, id
	return s.err
}

func (s *stubTableService) DeleteOwned(_ context.Context, caller *models.AuthUser, table, id string) error {
	s.lastCaller, s.lastTable, s.lastID = caller, table, id
	return s.err
}

func TestTableList_ParsesPaging(t *testing.T) {
	svc := &stubTableService{}
	resp := &stubResponseHandler{}
	h := NewTableHandlers(&Deps{ResponseHandler: resp, TableSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/admin/tables/orders?page=2&size=20", nil)
	req = withChiParams(withUser(req, testAdmin), "table", "orders")
	h.List(httptest.NewRecorder(), req)

	if resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.writeSuccessStatus)
	}
	if svc.lastTable != "orders" || svc.lastParams.Page != 2 || svc.lastParams.Size != 20 {
		t.Fatalf("unexpected call: %q %+v", svc.lastTable, svc.lastParams)
	}
}

func TestTableListOwned_PassesCaller(t *testing.T) {
	svc := &stubTableService{}
	resp := &stubResponseHandler{}
	h := NewTableHandlers(&Deps{ResponseHandler: resp, TableSvc: svc})
	caller := &models.AuthUser{UID: "u1", Role: models.RoleUser}

	req := httptest.NewRequest(http.MethodGet, "/tables/orders", nil)
	req = withChiParams(withUser(req, caller), "table", "orders")
	h.ListOwned(httptest.NewRecorder(), req)

	if svc.lastCaller != caller {
		t.Fatalf("caller not passed through")
	}
	if svc.lastParams.Page != dto.DefaultPage || svc.lastParams.Size != dto.DefaultPageSize {
		t.Fatalf("defaults not applied: %+v", svc.lastParams)
	}
}

func TestTableDeleteOwned_MapsForbidden(t *testing.T) {
	svc := &stubTableService{err: errs.NewForbiddenError("not yours")}
	h := NewTableHandlers(&Deps{ResponseHandler: realResponseHandler(), TableSvc: svc})

	req := httptest.NewRequest(http.MethodDelete, "/tables/orders/9", nil)
	req = withChiParams(withUser(req, &models.AuthUser{UID: "u1"}), "table", "orders", "id", "9")
	rr := httptest.NewRecorder()
	h.DeleteOwned(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if svc.lastID != "9" {
		t.Fatalf("id not passed: %q", svc.lastID)
	}
}
